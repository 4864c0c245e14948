// Package plan derives the export sequence of a layered drawing.
//
// Layers are read once from the document and reversed, so index 0 is the
// layer that comes last in document order. Each export step reveals one more
// layer on top of all previous ones:
//
//	layers:  [bg sky bird]
//	steps:   {bg sky} -> "sky", {bg sky bird} -> "bird"
//
// The first layer is a fixed background and is only exported on its own when
// [Options.IncludeBackground] is set.
package plan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// Layer is an Inkscape layer as seen by the planner.
type Layer struct {
	ID    string // Document id of the layer group
	Label string // Lowercased inkscape:label, may be empty
}

// ExportStep is one output document: a cumulative prefix of the layer list.
type ExportStep struct {
	// Index is the planner index of the newest layer revealed by this step.
	Index int
	// Visible holds the ids of layers 0..Index in planner order.
	Visible []string
	// FileName is the output name without extension.
	FileName string
}

// Contains reports whether layer id is visible in this step.
func (s ExportStep) Contains(id string) bool {
	return slices.Contains(s.Visible, id)
}

// Top returns the id of the layer revealed by this step, the one with the
// highest planner index.
func (s ExportStep) Top() string {
	if len(s.Visible) == 0 {
		return ""
	}
	return s.Visible[len(s.Visible)-1]
}

// Options control export planning.
type Options struct {
	// IncludeBackground also exports layer 0 as a step of its own.
	IncludeBackground bool
	// Enumerate prefixes file names with the 1-based layer ordinal.
	Enumerate bool
}

// ListLayers returns the document's layers in reverse document order.
func ListLayers(doc *svgdoc.Document) []Layer {
	elems := doc.Layers()
	layers := make([]Layer, 0, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		layers = append(layers, Layer{
			ID:    svgdoc.ID(elems[i]),
			Label: strings.ToLower(svgdoc.Label(elems[i])),
		})
	}
	return layers
}

// PlanExports returns one step per exported layer in increasing index order.
// Step i makes layers 0..i visible. An empty layer list, or a single layer
// without IncludeBackground, yields no steps.
func PlanExports(layers []Layer, opts Options) []ExportStep {
	var steps []ExportStep
	for i, layer := range layers {
		if i == 0 && !opts.IncludeBackground {
			continue
		}
		visible := make([]string, i+1)
		for j := 0; j <= i; j++ {
			visible[j] = layers[j].ID
		}
		steps = append(steps, ExportStep{
			Index:    i,
			Visible:  visible,
			FileName: FileName(i, layer.Label, opts.Enumerate),
		})
	}
	return steps
}

// FileName returns the output name for the layer at index i.
func FileName(i int, label string, enumerate bool) string {
	if enumerate {
		return fmt.Sprintf("%03d_%s", i+1, label)
	}
	return label
}

// DuplicateFileNames returns the file names shared by more than one step,
// in order of first occurrence. Later steps overwrite earlier files of the
// same name.
func DuplicateFileNames(steps []ExportStep) []string {
	seen := make(map[string]int, len(steps))
	var dups []string
	for _, s := range steps {
		seen[s.FileName]++
		if seen[s.FileName] == 2 {
			dups = append(dups, s.FileName)
		}
	}
	return dups
}
