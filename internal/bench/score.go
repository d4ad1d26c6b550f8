package bench

import "math"

const (
	scoreScale   = 1000.0
	scoreEpsilon = 1e-4
)

// Score converts a duration in seconds into a normalized score:
//
//	round(max(0, 1000 * (1 / (d + 1e-4))), 2)
//
// Shorter durations score higher. Score(0) is 10,000,000. Negative and NaN
// inputs count as 0 and +Inf scores 0, so the result is always finite and
// non-negative.
func Score(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		d = 0
	}
	if math.IsInf(d, 1) {
		return 0
	}
	s := max(0, scoreScale*(1/(d+scoreEpsilon)))
	return math.Round(s*100) / 100
}
