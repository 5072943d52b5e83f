// Package shelf provides a demonstration document cache in front of a slow
// backing store, with interchangeable eviction policies.
//
// Example usage:
//
//	cache, err := shelf.New(
//	    shelf.WithReader(reader),
//	    shelf.WithPolicy(shelf.PolicyLFU),
//	    shelf.WithCapacity(10),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	content, err := cache.Get(ctx, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s\n", content)
//
// A Cache is NOT safe for concurrent use: the demo runs generators, cache,
// and simulation harness on a single goroutine, and eviction bookkeeping
// must mutate atomically with the contents. Callers that need sharing must
// serialize access themselves.
package shelf

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/textshelf/shelf/internal/policy"
	"github.com/textshelf/shelf/internal/stats"
	"github.com/textshelf/shelf/internal/store"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNotFound indicates the requested document does not exist in the
	// backing store.
	ErrNotFound = errors.New("shelf: document not found")

	// ErrClosed indicates the cache has been closed.
	ErrClosed = errors.New("shelf: cache closed")

	// ErrNoReader indicates no backing-store reader was provided.
	ErrNoReader = errors.New("shelf: no reader provided")

	// ErrUnknownPolicy indicates an unrecognized eviction policy name.
	ErrUnknownPolicy = errors.New("shelf: unknown eviction policy")

	// ErrBadCapacity indicates a capacity below 1.
	ErrBadCapacity = errors.New("shelf: capacity must be at least 1")
)

// entry is a cached lookup result. A negative entry records that the
// backing store had no such document, so repeated lookups of a missing ID
// stop hitting the slow store.
type entry struct {
	content  []byte
	negative bool
}

// Cache serves document lookups through an eviction policy, counting hits
// and misses and accumulating the time spent in the backing store.
type Cache struct {
	reader        store.Reader
	policy        policy.Policy
	capacity      int
	cacheNegative bool
	stats         stats.Collector
	logger        *zap.Logger
	closed        atomic.Bool

	contents  map[int]entry
	hits      uint64
	misses    uint64
	readTime  time.Duration
	missByKey map[int]uint64
}

// New creates a new Cache with the given options.
func New(opts ...Option) (*Cache, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.reader == nil {
		return nil, ErrNoReader
	}
	if cfg.capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, cfg.capacity)
	}

	pol, err := newPolicy(cfg.policy, cfg.capacity)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		reader:        cfg.reader,
		policy:        pol,
		capacity:      cfg.capacity,
		cacheNegative: cfg.cacheNegative,
		stats:         cfg.stats,
		logger:        cfg.logger,
		contents:      make(map[int]entry, cfg.capacity),
		missByKey:     make(map[int]uint64),
	}

	c.logger.Debug("cache initialized",
		zap.String("policy", c.policy.Name()),
		zap.Int("capacity", c.capacity),
		zap.Bool("negativeCaching", c.cacheNegative),
	)

	return c, nil
}

// Get returns the content of the document with the given ID, serving it
// from the cache when resident and reading through to the backing store
// otherwise. Returns ErrNotFound if the document does not exist.
func (c *Cache) Get(ctx context.Context, id int) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.stats.IncCounter(stats.MetricGets, 1)

	if e, ok := c.contents[id]; ok {
		c.hits++
		c.stats.IncCounter(stats.MetricHits, 1)
		c.policy.Touch(id)
		c.logger.Debug("hit", zap.Int("id", id))
		if e.negative {
			return nil, ErrNotFound
		}
		return e.content, nil
	}

	c.misses++
	c.missByKey[id]++
	c.stats.IncCounter(stats.MetricMisses, 1)
	c.logger.Debug("miss", zap.Int("id", id))

	start := time.Now()
	content, err := c.reader.ReadDocument(ctx, id)
	elapsed := time.Since(start)
	c.readTime += elapsed
	c.stats.ObserveHistogram(stats.MetricReadSeconds, elapsed.Seconds())

	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("reading document %d: %w", id, err)
		}
		if !c.cacheNegative {
			return nil, ErrNotFound
		}
		c.insert(id, entry{negative: true})
		return nil, ErrNotFound
	}

	c.insert(id, entry{content: content})
	return content, nil
}

// insert adds a new entry, evicting first when the cache is full.
// The capacity invariant holds even mid-operation: the victim is removed
// before the new entry appears.
func (c *Cache) insert(id int, e entry) {
	if len(c.contents) >= c.capacity {
		c.evictOne()
	}
	c.contents[id] = e
	c.policy.Admit(id)
	c.stats.SetGauge(stats.MetricResidents, int64(len(c.contents)))
}

// evictOne removes one resident entry chosen by the policy. A policy with
// no victim while the cache is full is a bookkeeping defect; it is logged
// and an arbitrary resident key is evicted so the cache keeps operating.
func (c *Cache) evictOne() {
	victim, ok := c.policy.Evict()
	if _, resident := c.contents[victim]; !ok || !resident {
		c.logger.Error("eviction bookkeeping out of sync, evicting arbitrary key",
			zap.String("policy", c.policy.Name()),
			zap.Bool("policyHadVictim", ok),
			zap.Int("victim", victim),
		)
		for key := range c.contents {
			victim = key
			break
		}
	}

	delete(c.contents, victim)
	c.stats.IncCounter(stats.MetricEvictions, 1)
	c.logger.Debug("evicted document",
		zap.Int("id", victim),
		zap.String("policy", c.policy.Name()),
	)
}

// Stats returns a snapshot of the cache counters. Pure read; calling it
// never mutates the cache.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		ReadTime: c.readTime,
		Size:     len(c.contents),
	}
}

// TopMisses returns the n document IDs with the most misses since the last
// reset, most-missed first. Ties are ordered by ascending ID.
func (c *Cache) TopMisses(n int) []MissCount {
	counts := make([]MissCount, 0, len(c.missByKey))
	for key, count := range c.missByKey {
		counts = append(counts, MissCount{Key: key, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Reset zeroes all counters and timing statistics. If keepContents is
// false it also drops every cached entry and all eviction bookkeeping, so
// the cache behaves as freshly constructed. Resetting twice is the same as
// resetting once.
func (c *Cache) Reset(keepContents bool) {
	c.hits = 0
	c.misses = 0
	c.readTime = 0
	c.missByKey = make(map[int]uint64)
	c.policy.Reset(keepContents)
	if !keepContents {
		c.contents = make(map[int]entry, c.capacity)
	}
	c.stats.SetGauge(stats.MetricResidents, int64(len(c.contents)))
}

// Keys returns the resident document IDs in ascending order.
func (c *Cache) Keys() []int {
	keys := make([]int, 0, len(c.contents))
	for key := range c.contents {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// Len returns the number of resident entries.
func (c *Cache) Len() int { return len(c.contents) }

// Capacity returns the maximum number of resident entries.
func (c *Cache) Capacity() int { return c.capacity }

// Policy returns the name of the eviction policy in use.
func (c *Cache) Policy() string { return c.policy.Name() }

// Close releases the backing-store reader. After Close, the cache should
// not be used.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing reader: %w", err)
	}
	return nil
}

// Stats is a snapshot of cache counters since the last reset.
type Stats struct {
	Hits     uint64
	Misses   uint64
	ReadTime time.Duration // cumulative time spent in the backing store
	Size     int           // current number of resident entries
}

// Requests returns the total number of lookups.
func (s Stats) Requests() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Requests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// MissCount pairs a document ID with its miss count.
type MissCount struct {
	Key   int
	Count uint64
}
