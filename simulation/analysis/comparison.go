package analysis

import "fmt"

// PolicyComparison contains a statistical comparison of two eviction
// policies over their per-user hit-rate samples.
type PolicyComparison struct {
	Policy1    string
	Policy2    string
	Stats1     *DescriptiveStats
	Stats2     *DescriptiveStats
	EffectSize *EffectSize
	Winner     string // Policy with the higher mean hit rate, or "tie".
}

// ComparePolicies compares two policies by their hit-rate samples. Higher
// mean hit rate wins.
func ComparePolicies(policy1 string, sample1 []float64, policy2 string, sample2 []float64) *PolicyComparison {
	stats1 := Describe(sample1)
	stats2 := Describe(sample2)

	var winner string
	switch {
	case stats1.Mean > stats2.Mean:
		winner = policy1
	case stats2.Mean > stats1.Mean:
		winner = policy2
	default:
		winner = "tie"
	}

	return &PolicyComparison{
		Policy1:    policy1,
		Policy2:    policy2,
		Stats1:     stats1,
		Stats2:     stats2,
		EffectSize: ComputeEffectSize(sample1, sample2),
		Winner:     winner,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *PolicyComparison) Summary() string {
	return fmt.Sprintf(
		"%s vs %s:\n"+
			"  %s: mean=%.2f%%, median=%.2f%%, std=%.2f\n"+
			"  %s: mean=%.2f%%, median=%.2f%%, std=%.2f\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s",
		c.Policy1, c.Policy2,
		c.Policy1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Policy2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		c.Winner,
	)
}
