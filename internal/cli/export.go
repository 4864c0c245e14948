package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/takitaro/pkg/cache"
	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/pipeline"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// exportCommand creates the export command, the main entry point of takitaro.
func (c *CLI) exportCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{AnimationStyle: pipeline.DefaultAnimationStyle}

	cmd := &cobra.Command{
		Use:   "export [drawing.svg]",
		Short: "Export one animated SVG per layer",
		Long: `Export one animated SVG per layer of an Inkscape drawing.

Layers are taken bottom-up. The bottom layer is the background and is only
exported on its own with --include-background. Every other layer produces a
file showing it together with all layers below it; the paths of the newly
revealed layer are drawn on with a CSS stroke animation.

Files are named after the lowercased layer label, optionally prefixed with
the layer ordinal (--enumerate). Path measurements are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.ConfigPath)
			if err != nil {
				return err
			}
			if cfg.Path != "" {
				c.Logger.Debug("loaded config", "path", cfg.Path)
			}
			if err := cfg.apply(cmd.Flags(), &opts, &noCache); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().SetNormalizeFunc(underscoreFlags)
	addExportFlags(cmd.Flags(), &opts)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the measurement cache")

	return cmd
}

// addExportFlags declares the flags shared by export and plan.
func addExportFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVarP(&opts.OutputDir, "output-dir", "o", "", "output directory (default: home directory)")
	fs.StringVar(&opts.Prefix, "prefix", "", "file name prefix (accepted, currently unused)")
	fs.BoolVar(&opts.Enumerate, "enumerate", false, "prefix file names with the layer number")
	fs.BoolVar(&opts.IncludeBackground, "include-background", false, "export the background layer on its own")
	fs.StringVar(&opts.AnimationStyle, "animation-style", opts.AnimationStyle, "CSS animation-timing-function")
	fs.BoolVar(&opts.SkipUnmeasurable, "skip-unmeasurable", false, "skip paths whose data cannot be measured")
}

// runExport loads the drawing, exports every step, and reports the files.
func (c *CLI) runExport(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	doc, err := svgdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load drawing %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetDefaults()

	lock, err := lockOutput(opts.OutputDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.Logger.Warn("failed to release output lock", "path", lock.Path(), "err", err)
		}
	}()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Exporting layers...")
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %d files", len(result.Files)))

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	printSuccess("Processed %d export layers.", result.Stats.Processed)
	for _, f := range result.Files {
		printFile(f)
	}
	printStats(result.Stats.Paths, result.Stats.Duration)
	return nil
}

// lockOutput takes the exclusive export lock of an output directory. The lock
// file lives in the temp directory, keyed by the directory's absolute path.
func lockOutput(dir string) (*flock.Flock, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidOption, err, "resolve output directory %s", dir)
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.lock", appName, cache.Hash([]byte(abs))[:16]))

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeOutputWrite, err, "acquire output lock %s", path)
	}
	if !ok {
		return nil, errs.New(errs.ErrCodeOutputWrite, "another export is writing to %s", abs)
	}
	return lock, nil
}

// printStats prints run statistics on a single line.
func printStats(paths int, d time.Duration) {
	printDetail("%d paths animated · %s", paths, d.Round(time.Millisecond))
}
