// Package lfupolicy implements least-frequently-used eviction with a
// least-recently-used tie-break.
//
// Every tracked key carries an access frequency (1 on insertion, +1 per
// hit) and the logical-clock timestamp of its last touch. The clock
// advances once per cache access, hit or miss. The victim is the key with
// the minimum frequency; among equally infrequent keys the one with the
// smallest timestamp loses.
package lfupolicy

import (
	"github.com/textshelf/shelf/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy implements LFU eviction with LRU tie-break.
type Policy struct {
	freq  map[int]int    // key -> access count
	stamp map[int]uint64 // key -> last-touch logical time
	clock uint64
}

// New creates a new LFU policy.
func New() *Policy {
	return &Policy{
		freq:  make(map[int]int),
		stamp: make(map[int]uint64),
	}
}

// Name returns "lfu".
func (p *Policy) Name() string { return "lfu" }

func (p *Policy) tick() uint64 {
	p.clock++
	return p.clock
}

// Touch increments the key's frequency and stamps it with the current tick.
func (p *Policy) Touch(key int) {
	tick := p.tick()
	if _, ok := p.freq[key]; !ok {
		return
	}
	p.freq[key]++
	p.stamp[key] = tick
}

// Admit starts the key at frequency 1, stamped with the current tick.
func (p *Policy) Admit(key int) {
	tick := p.tick()
	p.freq[key] = 1
	p.stamp[key] = tick
}

// Evict removes and returns the least frequently used key, breaking
// frequency ties by evicting the least recently touched candidate.
// Frequency, timestamp, and the returned key are removed together; no
// partial bookkeeping survives an eviction.
func (p *Policy) Evict() (int, bool) {
	if len(p.freq) == 0 {
		return 0, false
	}

	victim := 0
	minFreq := -1
	var minStamp uint64
	for key, f := range p.freq {
		stamp := p.stamp[key]
		if minFreq == -1 || f < minFreq || (f == minFreq && stamp < minStamp) {
			victim = key
			minFreq = f
			minStamp = stamp
		}
	}

	delete(p.freq, victim)
	delete(p.stamp, victim)
	return victim, true
}

// Len returns the number of tracked keys.
func (p *Policy) Len() int { return len(p.freq) }

// Keys returns the tracked keys in unspecified order.
func (p *Policy) Keys() []int {
	keys := make([]int, 0, len(p.freq))
	for key := range p.freq {
		keys = append(keys, key)
	}
	return keys
}

// Freq returns the current access frequency for a key, or 0 if untracked.
func (p *Policy) Freq(key int) int { return p.freq[key] }

// Reset zeroes the logical clock. When keepKeys is false it also clears
// the frequency and timestamp tables.
func (p *Policy) Reset(keepKeys bool) {
	p.clock = 0
	if keepKeys {
		return
	}
	p.freq = make(map[int]int)
	p.stamp = make(map[int]uint64)
}
