package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/textshelf/shelf"
	"github.com/textshelf/shelf/simulation"
)

func sampleSummary(policy string, hits uint64) *simulation.Summary {
	return &simulation.Summary{
		Policy: policy,
		Seed:   42,
		Patterns: []simulation.PatternResult{
			{
				Pattern:       "uniform",
				Hits:          hits,
				Misses:        100 - hits,
				TotalRequests: 100,
				ReadTime:      250 * time.Millisecond,
				TopMisses:     []shelf.MissCount{{Key: 7, Count: 4}, {Key: 2, Count: 3}},
				UserHitRates:  []float64{float64(hits), float64(hits)},
			},
		},
	}
}

func TestMarkdownReport_Summary(t *testing.T) {
	var buf strings.Builder
	report := NewMarkdownReport(&buf)
	report.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	report.WriteHeader("Cache Simulation")
	report.WriteMethodology(3, 200, 42)
	report.WriteSummary(sampleSummary("lfu", 60))
	report.WriteFooter()

	out := buf.String()
	for _, want := range []string{
		"# Cache Simulation",
		"Generated: 2025-06-01T00:00:00Z",
		"- **Seed:** 42",
		"## Policy: lfu",
		"| uniform | 100 | 60 | 40 | 60.00% | 250ms |",
		"**60.00%**",
		"Most-missed documents (uniform): #7 (4) #2 (3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestMarkdownReport_Comparison(t *testing.T) {
	var buf strings.Builder
	report := NewMarkdownReport(&buf)

	comparison := &simulation.Comparison{
		Seed: 42,
		Summaries: []*simulation.Summary{
			sampleSummary("fifo", 40),
			sampleSummary("lfu", 60),
		},
	}
	report.WriteComparison(comparison)

	out := buf.String()
	if !strings.Contains(out, "| 1 | lfu | 60.00% |") {
		t.Errorf("ranking table wrong:\n%s", out)
	}
	if !strings.Contains(out, "**Best policy: lfu**") {
		t.Errorf("best policy missing:\n%s", out)
	}
	if !strings.Contains(out, "Winner vs Runner-up") {
		t.Errorf("winner comparison missing:\n%s", out)
	}
}
