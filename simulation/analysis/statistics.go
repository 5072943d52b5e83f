// Package analysis provides statistical analysis for simulation results.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DescriptiveStats contains basic descriptive statistics for a sample of
// per-user hit rates.
type DescriptiveStats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Describe computes descriptive statistics for a sample.
func Describe(sample []float64) *DescriptiveStats {
	if len(sample) == 0 {
		return &DescriptiveStats{}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	return &DescriptiveStats{
		N:      len(sample),
		Mean:   stat.Mean(sample, nil),
		Median: sorted[len(sorted)/2],
		StdDev: stat.StdDev(sample, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// EffectSize contains effect size metrics for a two-sample comparison.
type EffectSize struct {
	CohensD        float64 // Cohen's d: (mean1 - mean2) / pooled_std.
	Interpretation string  // "negligible", "small", "medium", "large".
}

// ComputeEffectSize computes Cohen's d effect size between two samples.
func ComputeEffectSize(sample1, sample2 []float64) *EffectSize {
	if len(sample1) == 0 || len(sample2) == 0 {
		return &EffectSize{Interpretation: "undefined"}
	}

	mean1 := stat.Mean(sample1, nil)
	mean2 := stat.Mean(sample2, nil)
	std1 := stat.StdDev(sample1, nil)
	std2 := stat.StdDev(sample2, nil)

	// Pooled standard deviation.
	n1 := float64(len(sample1))
	n2 := float64(len(sample2))
	var pooledStd float64
	if n1+n2 > 2 {
		pooledVar := ((n1-1)*std1*std1 + (n2-1)*std2*std2) / (n1 + n2 - 2)
		pooledStd = math.Sqrt(pooledVar)
	}

	var d float64
	if pooledStd > 0 {
		d = (mean1 - mean2) / pooledStd
	}

	return &EffectSize{
		CohensD:        d,
		Interpretation: interpretCohensD(math.Abs(d)),
	}
}

func interpretCohensD(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}
