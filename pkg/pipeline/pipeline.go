// Package pipeline drives the layer-by-layer export of an Inkscape drawing.
//
// This package ties the planner, the path analyzer and the animation
// synthesizer together so the CLI (and any other entry point) runs exactly
// the same export.
//
// # Architecture
//
// A run consists of one planning pass and one sequential pass over the
// planned steps:
//
//  1. Plan: read the layer stack and derive the cumulative export steps
//  2. Per step: set layer visibility on the workspace document, animate the
//     newly revealed layer, clone the workspace and write the clone
//
// The document handed to [Runner.Execute] is the workspace of the run. Style
// rules added for earlier steps stay in it, so later files carry the rules of
// every layer revealed so far; each file's visibility depends on its own step
// only.
//
// # Usage
//
//	doc, err := svgdoc.ReadFile("drawing.svg")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, cache, nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    OutputDir: "out",
//	    Enumerate: true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Processed %d export layers.\n", result.Stats.Processed)
package pipeline

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/takitaro/pkg/animate"
	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/plan"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultAnimationStyle is the default CSS animation-timing-function.
const DefaultAnimationStyle = animate.DefaultTimingFunction

// FileExtension is appended to every step's file name.
const FileExtension = ".svg"

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options contains all configuration for an export run.
type Options struct {
	// OutputDir receives one file per export step. Defaults to the user's
	// home directory.
	OutputDir string `json:"output_dir,omitempty"`

	// Prefix is accepted for compatibility but not applied to file names.
	Prefix string `json:"prefix,omitempty"`

	// Enumerate prefixes file names with the zero-padded layer ordinal.
	Enumerate bool `json:"enumerate,omitempty"`

	// IncludeBackground exports the bottom-most layer as a step of its own.
	IncludeBackground bool `json:"include_background,omitempty"`

	// AnimationStyle is the CSS animation-timing-function of every layer.
	AnimationStyle string `json:"animation_style,omitempty"`

	// SkipUnmeasurable drops paths with unmeasurable data instead of
	// aborting the run.
	SkipUnmeasurable bool `json:"skip_unmeasurable,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills in zero-valued options.
func (o *Options) SetDefaults() {
	if o.OutputDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.OutputDir = home
		} else {
			o.OutputDir = "."
		}
	}
	o.AnimationStyle = strings.TrimSpace(o.AnimationStyle)
	if o.AnimationStyle == "" {
		o.AnimationStyle = DefaultAnimationStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := errs.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	return animate.ValidateTimingFunction(o.AnimationStyle)
}

// PlanOptions returns the planner view of the options.
func (o *Options) PlanOptions() plan.Options {
	return plan.Options{
		IncludeBackground: o.IncludeBackground,
		Enumerate:         o.Enumerate,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of an export run.
type Result struct {
	// Layers is the planner's layer order.
	Layers []plan.Layer

	// Steps are the executed export steps.
	Steps []plan.ExportStep

	// Files are the written paths, one per step.
	Files []string

	// Warnings are non-fatal conditions met during the run.
	Warnings []string

	// Stats contains counts and timing.
	Stats Stats
}

// Stats contains export run statistics.
type Stats struct {
	Processed int           // Number of files written
	Paths     int           // Number of animated paths
	Duration  time.Duration // Wall time of the run
}
