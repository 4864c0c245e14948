package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/takitaro/pkg/pipeline"
	"github.com/matzehuels/takitaro/pkg/plan"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// planCommand creates the plan command, a dry run of export.
func (c *CLI) planCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{AnimationStyle: pipeline.DefaultAnimationStyle}

	cmd := &cobra.Command{
		Use:   "plan [drawing.svg]",
		Short: "Show the files export would write",
		Long: `Show the layers of a drawing and the files export would write,
without measuring or writing anything. Accepts the same flags and config
file as export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.apply(cmd.Flags(), &opts, &noCache); err != nil {
				return err
			}
			return c.runPlan(args[0], opts)
		},
	}

	cmd.Flags().SetNormalizeFunc(underscoreFlags)
	addExportFlags(cmd.Flags(), &opts)

	return cmd
}

// runPlan loads the drawing and prints the layer table.
func (c *CLI) runPlan(input string, opts pipeline.Options) error {
	doc, err := svgdoc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load drawing %s: %w", input, err)
	}

	opts.Logger = c.Logger
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	layers, steps, err := pipeline.NewRunner(nil, nil, nil, c.Logger).Plan(doc, opts)
	if err != nil {
		return err
	}

	printKeyValue("Drawing", input)
	printKeyValue("Layers", strconv.Itoa(len(layers)))
	printKeyValue("Output", opts.OutputDir)
	printNewline()

	if len(steps) == 0 {
		printInfo("Nothing to export")
		return nil
	}

	fmt.Fprintln(stdout, renderPlanTable(layers, steps, opts.OutputDir))
	for _, name := range plan.DuplicateFileNames(steps) {
		printWarning("several layers export to %s%s; the last one wins", name, pipeline.FileExtension)
	}
	printNewline()
	printNextStep("Export", appName+" export "+input)
	return nil
}

// renderPlanTable renders one row per step: file, new layer, visible stack.
func renderPlanTable(layers []plan.Layer, steps []plan.ExportStep, dir string) string {
	labels := make(map[string]string, len(layers))
	for _, l := range layers {
		labels[l.ID] = l.Label
	}

	rows := make([][]string, len(steps))
	for i, s := range steps {
		visible := make([]string, len(s.Visible))
		for j, id := range s.Visible {
			visible[j] = labels[id]
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			filepath.Join(dir, s.FileName+pipeline.FileExtension),
			labels[s.Top()],
			strings.Join(visible, " › "),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "File", "Animates", "Visible").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorTeal)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
