package animate

import "math"

// Allocation is the slice of the animation timeline, in percent, during
// which one path draws itself.
type Allocation struct {
	Start float64
	End   float64
}

// Allocate partitions [0, 100] between ms in proportion to their lengths.
//
// The allocations are contiguous: the first starts at 0 and each starts
// where the previous one ended. Each share is rounded to three decimals and
// the running end is clamped at 100; rounding drift is left in place. If the
// total length is zero every allocation is {0, 0}.
func Allocate(ms []PathMeasurement) []Allocation {
	out := make([]Allocation, len(ms))
	total := TotalLength(ms)
	if total <= 0 {
		return out
	}

	end := 0.0
	for i, m := range ms {
		start := end
		end = math.Min(100, end+round3(m.Length/total*100))
		out[i] = Allocation{Start: start, End: end}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
