package cleaning

import (
	"math"
	"sort"
)

// iqrMultiplier scales the interquartile range when placing the
// outlier fence.
const iqrMultiplier = 1.5

// Quantile returns the q-th quantile (0 <= q <= 1) of values using
// linear interpolation between order statistics. The input is not
// modified. NaN is returned for an empty slice.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// OutlierFence computes the inclusive IQR fence
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR] over the given amounts. ok is false
// when there are no amounts to fence against, in which case every
// value is out of bounds.
func OutlierFence(values []float64) (lower, upper float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr, true
}
