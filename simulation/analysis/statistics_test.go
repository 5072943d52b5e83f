package analysis

import (
	"strings"
	"testing"
)

func TestEffectSize(t *testing.T) {
	tests := []struct {
		name       string
		sample1    []float64
		sample2    []float64
		wantInterp string
	}{
		{
			name:       "large effect",
			sample1:    []float64{40, 42, 44, 46, 48},
			sample2:    []float64{70, 72, 74, 76, 78},
			wantInterp: "large",
		},
		{
			name:       "negligible effect",
			sample1:    []float64{50, 50, 50, 50, 50},
			sample2:    []float64{50.1, 50, 49.9, 50, 50},
			wantInterp: "negligible",
		},
		{
			name:       "empty sample",
			sample1:    nil,
			sample2:    []float64{1, 2, 3},
			wantInterp: "undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeEffectSize(tt.sample1, tt.sample2)
			if result.Interpretation != tt.wantInterp {
				t.Errorf("Interpretation = %s, want %s (d=%f)", result.Interpretation, tt.wantInterp, result.CohensD)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	sample := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	stats := Describe(sample)

	if stats.N != 10 {
		t.Errorf("N = %d, want 10", stats.N)
	}
	if stats.Mean != 55 {
		t.Errorf("Mean = %f, want 55", stats.Mean)
	}
	if stats.Min != 10 {
		t.Errorf("Min = %f, want 10", stats.Min)
	}
	if stats.Max != 100 {
		t.Errorf("Max = %f, want 100", stats.Max)
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats := Describe(nil)
	if stats.N != 0 {
		t.Errorf("N = %d, want 0", stats.N)
	}
}

func TestComparePolicies(t *testing.T) {
	comp := ComparePolicies(
		"lfu", []float64{60, 62, 64},
		"fifo", []float64{40, 42, 44},
	)

	if comp.Winner != "lfu" {
		t.Errorf("Winner = %s, want lfu", comp.Winner)
	}
	if comp.EffectSize.Interpretation != "large" {
		t.Errorf("Interpretation = %s, want large", comp.EffectSize.Interpretation)
	}
	if !strings.Contains(comp.Summary(), "lfu vs fifo") {
		t.Errorf("Summary() missing policy names: %q", comp.Summary())
	}
}

func TestComparePolicies_Tie(t *testing.T) {
	comp := ComparePolicies("mru", []float64{50, 50}, "fifo", []float64{50, 50})
	if comp.Winner != "tie" {
		t.Errorf("Winner = %s, want tie", comp.Winner)
	}
}
