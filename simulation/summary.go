package simulation

import (
	"time"

	"github.com/textshelf/shelf"
)

// PatternResult holds the cache statistics collected while one access
// pattern ran against a cold cache.
type PatternResult struct {
	// Pattern is the generator name.
	Pattern string

	Hits          uint64
	Misses        uint64
	TotalRequests uint64

	// ReadTime is the cumulative time spent in the backing store.
	ReadTime time.Duration

	// TopMisses lists the most-missed document IDs, most-missed first.
	TopMisses []shelf.MissCount

	// UserHitRates holds one hit-rate percentage per simulated user, in
	// user order, for statistical comparison across policies.
	UserHitRates []float64
}

// HitRate returns the pattern's hit rate as a percentage.
func (r PatternResult) HitRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.TotalRequests) * 100
}

// Summary is the result of one simulation run: per-pattern statistics for
// a single cache, plus the seed that produced them. A Summary is immutable
// once returned.
type Summary struct {
	// Policy is the eviction policy of the simulated cache.
	Policy string

	// Seed is the seed actually used; when none was requested this is the
	// randomly drawn one, recorded for later reproduction.
	Seed uint64

	// Patterns holds one result per generator, in the fixed run order.
	Patterns []PatternResult
}

// AggregateHitRate returns total hits over total requests across all
// patterns, as a percentage. It is the ranking criterion of the
// comparative mode.
func (s *Summary) AggregateHitRate() float64 {
	var hits, total uint64
	for _, p := range s.Patterns {
		hits += p.Hits
		total += p.TotalRequests
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Comparison holds one Summary per candidate policy, all produced with the
// same seed and parameters.
type Comparison struct {
	Seed      uint64
	Summaries []*Summary
}

// Best returns the summary with the highest aggregate hit rate. Ties go to
// the policy that ran first. Returns nil for an empty comparison.
func (c *Comparison) Best() *Summary {
	var best *Summary
	for _, s := range c.Summaries {
		if best == nil || s.AggregateHitRate() > best.AggregateHitRate() {
			best = s
		}
	}
	return best
}
