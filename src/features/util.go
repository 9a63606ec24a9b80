package features

import "math"

// -----------------------------------------------------------------------------
// Small shared numeric helpers.
// -----------------------------------------------------------------------------

func ptr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// finite reports whether a pointed-to value exists and is a usable number.
func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// orZero treats a missing value as "no contribution", not a measured zero.
func orZero(v *float64) float64 {
	if finite(v) {
		return *v
	}
	return 0
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x float64) float64 { return clamp(x, 0, 1) }

// -----------------------------------------------------------------------------

// meanOf averages a slice, nil when empty.
func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// sampleStd is the n-1 standard deviation, nil when fewer than two values.
func sampleStd(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := *meanOf(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	sd := math.Sqrt(sum / float64(len(values)-1))
	return &sd
}

// populationStd is the n denominator variant used for day-count baselines.
func populationStd(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := *meanOf(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	sd := math.Sqrt(sum / float64(len(values)))
	return &sd
}
