// Package geometry measures the arc length of SVG path data.
//
// Path data is parsed with github.com/tdewolff/canvas in float64 user units
// and split into sub-paths at each moveto. Lines, quadratic Béziers and
// elliptical arcs are measured in closed form; cubic Béziers use the
// numerical integration built into canvas.Path.Length.
//
// Lengths are reported per sub-path so callers can choose between the total
// length and the longest continuous stroke:
//
//	m, err := geometry.NewPathMeasurer().Measure("M0 0 L3 4 M10 10 h7")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.Total(), m.Longest()) // 12 7
package geometry
