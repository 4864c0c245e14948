package geometry

import (
	"math"
	"strings"

	"github.com/tdewolff/canvas"

	errs "github.com/matzehuels/takitaro/pkg/errors"
)

// Measurer returns the sub-path lengths of SVG path data.
type Measurer interface {
	Measure(d string) (Measurement, error)
}

// Measurement holds the length of each sub-path, in path order.
type Measurement struct {
	Subpaths []float64 `json:"subpaths"`
}

// SubpathLengths returns a copy of the sub-path lengths.
func (m Measurement) SubpathLengths() []float64 {
	out := make([]float64, len(m.Subpaths))
	copy(out, m.Subpaths)
	return out
}

// Total returns the summed length of all sub-paths.
func (m Measurement) Total() float64 {
	var total float64
	for _, l := range m.Subpaths {
		total += l
	}
	return total
}

// Longest returns the length of the longest sub-path, or 0 for an empty
// measurement.
func (m Measurement) Longest() float64 {
	var longest float64
	for _, l := range m.Subpaths {
		longest = math.Max(longest, l)
	}
	return longest
}

// PathMeasurer measures path data in float64 user units.
type PathMeasurer struct{}

// NewPathMeasurer returns a PathMeasurer.
func NewPathMeasurer() *PathMeasurer {
	return &PathMeasurer{}
}

// Measure parses d and returns the length of each sub-path. A sub-path
// consisting of a lone moveto contributes nothing. Empty or malformed path
// data yields a GEOMETRY_FAILURE error.
func (*PathMeasurer) Measure(d string) (Measurement, error) {
	if strings.TrimSpace(d) == "" {
		return Measurement{}, errs.New(errs.ErrCodeGeometry, "empty path data")
	}

	p, err := canvas.ParseSVGPath(d)
	if err != nil {
		return Measurement{}, errs.Wrap(errs.ErrCodeGeometry, err, "parse path data %q", abbreviate(d))
	}

	var m Measurement
	for _, sub := range p.Split() {
		m.Subpaths = append(m.Subpaths, sub.Length())
	}
	return m, nil
}

func abbreviate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
