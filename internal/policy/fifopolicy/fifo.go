// Package fifopolicy implements first-in, first-out eviction.
//
// The victim is always the key resident longest; hits never change the
// eviction order.
package fifopolicy

import (
	"github.com/textshelf/shelf/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy implements FIFO eviction.
type Policy struct {
	queue []int // arrival order, oldest first
	set   map[int]struct{}
}

// New creates a new FIFO policy.
func New() *Policy {
	return &Policy{
		set: make(map[int]struct{}),
	}
}

// Name returns "fifo".
func (p *Policy) Name() string { return "fifo" }

// Touch is a no-op: FIFO ignores hits.
func (p *Policy) Touch(key int) {}

// Admit appends the key to the arrival queue. Admitting a key that is
// already tracked is a no-op; only the first insertion counts.
func (p *Policy) Admit(key int) {
	if _, ok := p.set[key]; ok {
		return
	}
	p.queue = append(p.queue, key)
	p.set[key] = struct{}{}
}

// Evict removes and returns the oldest key.
func (p *Policy) Evict() (int, bool) {
	if len(p.queue) == 0 {
		return 0, false
	}
	key := p.queue[0]
	p.queue = p.queue[1:]
	delete(p.set, key)
	return key, true
}

// Len returns the number of tracked keys.
func (p *Policy) Len() int { return len(p.queue) }

// Keys returns the tracked keys in arrival order.
func (p *Policy) Keys() []int {
	keys := make([]int, len(p.queue))
	copy(keys, p.queue)
	return keys
}

// Reset clears the queue when keepKeys is false. FIFO keeps no statistics,
// so resetting with keepKeys true changes nothing.
func (p *Policy) Reset(keepKeys bool) {
	if keepKeys {
		return
	}
	p.queue = nil
	p.set = make(map[int]struct{})
}
