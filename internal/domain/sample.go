package domain

import (
	"math"
	"slices"
	"sort"
)

// TimeEpsilon is the tolerance used when comparing sample times
const TimeEpsilon = 1e-9

// SameTime reports whether two sample times are equal within TimeEpsilon
func SameTime(a, b float64) bool {
	return math.Abs(a-b) <= TimeEpsilon
}

// SampleInterval locates t among sorted sample times. It returns the
// bracketing indices and the blend factor between them. Outside the
// sampled range both indices point at the nearest endpoint.
func SampleInterval(times []float64, t float64) (lo, hi int, x float64) {
	n := len(times)
	if n == 0 {
		return 0, 0, 0
	}
	if t <= times[0] {
		return 0, 0, 0
	}
	if t >= times[n-1] {
		return n - 1, n - 1, 0
	}
	hi = sort.SearchFloat64s(times, t)
	if SameTime(times[hi], t) {
		return hi, hi, 0
	}
	lo = hi - 1
	return lo, hi, (t - times[lo]) / (times[hi] - times[lo])
}

// HoldIndex returns the last sample at or before t, or the first sample
// when t precedes them all.
func HoldIndex(times []float64, t float64) int {
	idx := sort.Search(len(times), func(i int) bool {
		return times[i] > t+TimeEpsilon
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// MergeTimes returns the sorted union of the given time sets with
// near-equal times collapsed.
func MergeTimes(sets ...[]float64) []float64 {
	var all []float64
	for _, s := range sets {
		all = append(all, s...)
	}
	if len(all) == 0 {
		return nil
	}
	slices.Sort(all)
	out := all[:1]
	for _, t := range all[1:] {
		if !SameTime(t, out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return slices.Clip(out)
}
