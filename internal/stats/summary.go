// Package stats holds the descriptive statistics behind the consistency and
// velocity views.
package stats

import (
	"math"
	"sort"
)

// Summary describes a list of values. When Valid is false there were no
// values and every other field is zero; callers should show "N/A".
type Summary struct {
	Count    int
	Mean     float64
	Median   float64
	Variance float64
	StdDev   float64

	// CV is the coefficient of variation in percent, 0 when Mean is 0.
	CV float64

	Min   float64
	Max   float64
	Valid bool
}

// Describe computes a Summary. Variance is the population variance.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	s := Summary{Count: n, Valid: true, Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(n)

	var sq float64
	for _, v := range values {
		sq += (v - s.Mean) * (v - s.Mean)
	}
	s.Variance = sq / float64(n)
	s.StdDev = math.Sqrt(s.Variance)
	if s.Mean != 0 {
		s.CV = s.StdDev / s.Mean * 100
	}
	s.Median = Median(values)
	return s
}

// Median returns the middle value, averaging the two middle values for even
// lengths. It does not modify values.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Ints converts counts for Describe.
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// MovingAverage is the trailing simple moving average of values over window.
// Until a full window is available the average covers the values so far.
func MovingAverage(values []int, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	sum := 0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := min(i+1, window)
		out[i] = float64(sum) / float64(n)
	}
	return out
}
