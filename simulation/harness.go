// Package simulation provides the benchmarking harness that drives caches
// through synthetic access patterns and aggregates comparative results.
//
// Reproducibility contract: the harness derives an independent random
// source per pattern from the run seed and the pattern name, so a
// pattern's key sequence depends only on (seed, pattern) — never on how
// much randomness earlier patterns consumed or on the pattern order.
package simulation

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/textshelf/shelf"
	"github.com/textshelf/shelf/simulation/pattern"
)

// Defaults for simulation options.
const (
	DefaultUsers           = 3
	DefaultRequestsPerUser = 200
	DefaultTopMisses       = 5
)

// Options configures a simulation run.
type Options struct {
	// Users is the number of simulated users per pattern (default 3).
	Users int

	// RequestsPerUser is the number of lookups each user issues
	// (default 200).
	RequestsPerUser int

	// Seed pins the run for reproducibility. When nil, a
	// cryptographically strong seed is drawn and recorded in the summary.
	Seed *uint64

	// Generators are the access patterns to run, in order
	// (default pattern.Default()).
	Generators []pattern.Generator

	// TopMisses is how many most-missed keys to record per pattern
	// (default 5).
	TopMisses int

	// Logger logs per-pattern progress. Optional.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Users <= 0 {
		o.Users = DefaultUsers
	}
	if o.RequestsPerUser <= 0 {
		o.RequestsPerUser = DefaultRequestsPerUser
	}
	if len(o.Generators) == 0 {
		o.Generators = pattern.Default()
	}
	if o.TopMisses <= 0 {
		o.TopMisses = DefaultTopMisses
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// resolveSeed returns the requested seed, or draws a crypto-strong one.
func resolveSeed(requested *uint64) (uint64, error) {
	if requested != nil {
		return *requested, nil
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("drawing seed: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// patternRNG derives the isolated random source for one pattern.
func patternRNG(seed uint64, name string) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^fnv1a64(name)))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Run drives the cache through every generator in order, starting each
// pattern from a cold cache, and returns the per-pattern statistics.
func Run(ctx context.Context, cache *shelf.Cache, opts Options) (*Summary, error) {
	opts = opts.withDefaults()

	seed, err := resolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Policy:   cache.Policy(),
		Seed:     seed,
		Patterns: make([]PatternResult, 0, len(opts.Generators)),
	}

	logger := opts.Logger.With(
		zap.String("policy", cache.Policy()),
		zap.Uint64("seed", seed),
	)

	for _, gen := range opts.Generators {
		// Every pattern starts from an equivalent cold state.
		cache.Reset(false)

		rng := patternRNG(seed, gen.Name())
		userRates := make([]float64, 0, opts.Users)
		var prev shelf.Stats

		for user := 0; user < opts.Users; user++ {
			for key := range gen.Keys(rng, opts.RequestsPerUser) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if _, err := cache.Get(ctx, key); err != nil && !errors.Is(err, shelf.ErrNotFound) {
					return nil, fmt.Errorf("pattern %s, key %d: %w", gen.Name(), key, err)
				}
			}

			snap := cache.Stats()
			userHits := snap.Hits - prev.Hits
			userTotal := snap.Requests() - prev.Requests()
			if userTotal > 0 {
				userRates = append(userRates, float64(userHits)/float64(userTotal)*100)
			}
			prev = snap
		}

		final := cache.Stats()
		result := PatternResult{
			Pattern:       gen.Name(),
			Hits:          final.Hits,
			Misses:        final.Misses,
			TotalRequests: final.Requests(),
			ReadTime:      final.ReadTime,
			TopMisses:     cache.TopMisses(opts.TopMisses),
			UserHitRates:  userRates,
		}
		summary.Patterns = append(summary.Patterns, result)

		logger.Info("pattern finished",
			zap.String("pattern", gen.Name()),
			zap.Uint64("hits", result.Hits),
			zap.Uint64("misses", result.Misses),
			zap.Duration("readTime", result.ReadTime),
		)
	}

	return summary, nil
}

// CacheFactory builds a fresh cache for the named eviction policy.
// Returning an error aborts the comparison; the harness never proceeds
// with a partially constructed cache.
type CacheFactory func(policyName string) (*shelf.Cache, error)

// Compare runs the harness once per candidate policy, all runs sharing one
// seed and identical parameters, and returns the collected summaries.
func Compare(ctx context.Context, newCache CacheFactory, policies []string, opts Options) (*Comparison, error) {
	opts = opts.withDefaults()

	seed, err := resolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}
	opts.Seed = &seed

	comparison := &Comparison{Seed: seed}
	for _, policyName := range policies {
		cache, err := newCache(policyName)
		if err != nil {
			return nil, fmt.Errorf("building %s cache: %w", policyName, err)
		}

		summary, err := Run(ctx, cache, opts)
		cache.Close()
		if err != nil {
			return nil, err
		}
		comparison.Summaries = append(comparison.Summaries, summary)
	}

	return comparison, nil
}
