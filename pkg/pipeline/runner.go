package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/takitaro/pkg/animate"
	"github.com/matzehuels/takitaro/pkg/cache"
	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/geometry"
	"github.com/matzehuels/takitaro/pkg/observability"
	"github.com/matzehuels/takitaro/pkg/plan"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// Runner executes export runs.
//
// The Runner holds no per-run state: everything a run mutates lives in the
// document passed to Execute.
type Runner struct {
	Geometry geometry.Measurer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// A nil measurer uses a geometry.PathMeasurer, a nil cache disables caching and
// a nil keyer uses the DefaultKeyer.
func NewRunner(m geometry.Measurer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if m == nil {
		m = geometry.NewPathMeasurer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Geometry: m, Cache: c, Keyer: keyer, Logger: logger}
}

// Plan lists the layers of doc and derives the export steps.
//
// Layers without an id and step file names that are not plain file names
// are rejected before anything is written.
func (r *Runner) Plan(doc *svgdoc.Document, opts Options) ([]plan.Layer, []plan.ExportStep, error) {
	layers := plan.ListLayers(doc)
	for i, l := range layers {
		if l.ID == "" {
			return nil, nil, errs.New(errs.ErrCodeInvalidDocument, "layer %d (label %q) has no id", i, l.Label)
		}
	}

	steps := plan.PlanExports(layers, opts.PlanOptions())
	for _, s := range steps {
		if err := errs.ValidateFileName(s.FileName); err != nil {
			return nil, nil, fmt.Errorf("layer %q: %w", s.Top(), err)
		}
	}
	return layers, steps, nil
}

// Execute exports every planned step of doc.
//
// doc is the run's workspace: visibility and animation rules are applied to
// it step by step and each written file is a clone of it. A layer without
// paths is reported in Result.Warnings and still exported. Any other failure
// aborts the run. Cancellation is checked between steps.
func (r *Runner) Execute(ctx context.Context, doc *svgdoc.Document, opts Options) (*Result, error) {
	start := time.Now()
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	layers, steps, err := r.Plan(doc, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Layers: layers, Steps: steps}

	logger.Info("planned export",
		"layers", len(layers),
		"steps", len(steps),
		"output", opts.OutputDir)
	if opts.Prefix != "" {
		logger.Debug("prefix is not applied to file names", "prefix", opts.Prefix)
	}
	for _, name := range plan.DuplicateFileNames(steps) {
		msg := fmt.Sprintf("several layers export to %s%s; the last one wins", name, FileExtension)
		logger.Warn(msg)
		result.Warnings = append(result.Warnings, msg)
	}

	if len(steps) > 0 {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrCodeOutputWrite, err, "create output directory %s", opts.OutputDir)
		}
	}

	ws := &workspace{
		doc:    doc,
		sheet:  doc.StyleSheet(),
		layers: layers,
		analyzer: &animate.Analyzer{
			Geometry:         r.Geometry,
			Cache:            r.Cache,
			Keyer:            r.Keyer,
			Logger:           logger,
			SkipUnmeasurable: opts.SkipUnmeasurable,
		},
		synth: &animate.Synthesizer{TimingFunction: opts.AnimationStyle},
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stepStart := time.Now()
		observability.Export().OnStepStart(ctx, i, step.FileName)

		out, err := ws.export(ctx, i, step, opts)
		observability.Export().OnStepComplete(ctx, i, step.FileName, time.Since(stepStart), err)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", step.FileName, err)
		}

		result.Files = append(result.Files, out.path)
		result.Warnings = append(result.Warnings, out.warnings...)
		result.Stats.Paths += out.paths
		logger.Debug("exported step",
			"step", i,
			"layer", step.Top(),
			"paths", out.paths,
			"file", out.path,
			"duration", time.Since(stepStart))
	}

	result.Stats.Processed = len(result.Files)
	result.Stats.Duration = time.Since(start)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Workspace
// =============================================================================

// workspace is the mutable state of one run.
type workspace struct {
	doc      *svgdoc.Document
	sheet    *svgdoc.StyleSheet
	layers   []plan.Layer
	analyzer *animate.Analyzer
	synth    *animate.Synthesizer
}

type stepOutput struct {
	path     string
	paths    int
	warnings []string
}

func (w *workspace) export(ctx context.Context, ordinal int, step plan.ExportStep, opts Options) (stepOutput, error) {
	var out stepOutput

	if err := applyVisibility(w.doc, w.layers, step); err != nil {
		return out, err
	}

	top := w.doc.ElementByID(step.Top())
	if top == nil {
		return out, errs.New(errs.ErrCodeInternal, "layer %q disappeared from the document", step.Top())
	}

	ms, err := w.analyzer.Measure(ctx, top)
	switch {
	case errors.Is(err, animate.ErrNoAnimatablePaths):
		msg := fmt.Sprintf("layer %q: %s", layerName(w.layers[step.Index]), animate.NoPathsHint)
		opts.Logger.Warn(msg)
		out.warnings = append(out.warnings, msg)
	case err != nil:
		return out, err
	default:
		observability.Export().OnPathsMeasured(ctx, step.Top(), len(ms), animate.TotalLength(ms))
		if err := w.synth.Apply(w.sheet, ms, animate.Allocate(ms), animate.AnimationID(ordinal)); err != nil {
			return out, err
		}
		out.paths = len(ms)
	}

	clone := w.doc.Clone()
	if err := applyVisibility(clone, w.layers, step); err != nil {
		return out, err
	}

	out.path = filepath.Join(opts.OutputDir, step.FileName+FileExtension)
	if err := clone.WriteFile(out.path); err != nil {
		return out, err
	}
	return out, nil
}

// applyVisibility shows the layers of step and hides all others.
func applyVisibility(doc *svgdoc.Document, layers []plan.Layer, step plan.ExportStep) error {
	for _, l := range layers {
		el := doc.ElementByID(l.ID)
		if el == nil {
			return errs.New(errs.ErrCodeInternal, "layer %q not found", l.ID)
		}
		svgdoc.SetVisible(el, step.Contains(l.ID))
	}
	return nil
}

func layerName(l plan.Layer) string {
	if l.Label != "" {
		return l.Label
	}
	return l.ID
}
