// Package reporting renders simulation results as Markdown reports.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/textshelf/shelf/simulation"
	"github.com/textshelf/shelf/simulation/analysis"
)

// MarkdownReport writes simulation results in Markdown format.
type MarkdownReport struct {
	w io.Writer

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w, now: time.Now}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", r.now().Format(time.RFC3339))
}

// WriteMethodology writes the run parameters so the report is
// self-describing and reproducible.
func (r *MarkdownReport) WriteMethodology(users, requestsPerUser int, seed uint64) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Simulated users:** %d\n", users)
	fmt.Fprintf(r.w, "- **Requests per user:** %d\n", requestsPerUser)
	fmt.Fprintf(r.w, "- **Seed:** %d\n", seed)
	fmt.Fprintln(r.w, "- **Metric:** aggregate hit rate across all patterns (higher is better)")
	fmt.Fprintln(r.w)
}

// WriteSummary writes one policy's per-pattern results.
func (r *MarkdownReport) WriteSummary(s *simulation.Summary) {
	fmt.Fprintf(r.w, "## Policy: %s\n\n", s.Policy)

	fmt.Fprintln(r.w, "| Pattern | Requests | Hits | Misses | Hit Rate | Read Time |")
	fmt.Fprintln(r.w, "|---------|----------|------|--------|----------|-----------|")
	for _, p := range s.Patterns {
		fmt.Fprintf(r.w, "| %s | %d | %d | %d | %.2f%% | %s |\n",
			p.Pattern, p.TotalRequests, p.Hits, p.Misses, p.HitRate(),
			p.ReadTime.Round(time.Millisecond))
	}
	fmt.Fprintf(r.w, "| **aggregate** | | | | **%.2f%%** | |\n", s.AggregateHitRate())
	fmt.Fprintln(r.w)

	for _, p := range s.Patterns {
		if len(p.TopMisses) == 0 {
			continue
		}
		fmt.Fprintf(r.w, "Most-missed documents (%s):", p.Pattern)
		for _, mc := range p.TopMisses {
			fmt.Fprintf(r.w, " #%d (%d)", mc.Key, mc.Count)
		}
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w)
	}
}

// WriteComparison writes the ranking table, the winner, and a statistical
// comparison of the winner against the runner-up.
func (r *MarkdownReport) WriteComparison(c *simulation.Comparison) {
	fmt.Fprintln(r.w, "## Ranking")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Rank | Policy | Aggregate Hit Rate |")
	fmt.Fprintln(r.w, "|------|--------|--------------------|")

	ranked := make([]*simulation.Summary, len(c.Summaries))
	copy(ranked, c.Summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AggregateHitRate() > ranked[j].AggregateHitRate()
	})
	for i, s := range ranked {
		fmt.Fprintf(r.w, "| %d | %s | %.2f%% |\n", i+1, s.Policy, s.AggregateHitRate())
	}
	fmt.Fprintln(r.w)

	best := c.Best()
	if best == nil {
		return
	}
	fmt.Fprintf(r.w, "**Best policy: %s** (%.2f%% aggregate hit rate)\n\n",
		best.Policy, best.AggregateHitRate())

	if len(ranked) > 1 {
		comp := analysis.ComparePolicies(
			ranked[0].Policy, userRates(ranked[0]),
			ranked[1].Policy, userRates(ranked[1]),
		)
		fmt.Fprintln(r.w, "### Winner vs Runner-up")
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "- **Per-user hit rate means:** %.2f%% vs %.2f%%\n",
			comp.Stats1.Mean, comp.Stats2.Mean)
		fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
			comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
		fmt.Fprintln(r.w)
	}
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by shelf simulate*")
}

// userRates pools a summary's per-user hit-rate samples across patterns.
func userRates(s *simulation.Summary) []float64 {
	var rates []float64
	for _, p := range s.Patterns {
		rates = append(rates, p.UserHitRates...)
	}
	return rates
}
