// Package lrupolicy implements least-recently-used eviction on top of
// hashicorp/golang-lru. It is the conventional baseline the demo policies
// are compared against.
package lrupolicy

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/textshelf/shelf/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy implements LRU eviction.
type Policy struct {
	keys *lru.Cache[int, struct{}]
}

// New creates a new LRU policy for a cache of the given capacity.
func New(capacity int) (*Policy, error) {
	keys, err := lru.New[int, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &Policy{keys: keys}, nil
}

// Name returns "lru".
func (p *Policy) Name() string { return "lru" }

// Touch marks the key as most recently used.
func (p *Policy) Touch(key int) {
	p.keys.Get(key)
}

// Admit tracks the key as most recently used.
// The cache evicts before admitting, so the inner structure never reaches
// capacity here and never evicts on its own.
func (p *Policy) Admit(key int) {
	p.keys.Add(key, struct{}{})
}

// Evict removes and returns the least recently used key.
func (p *Policy) Evict() (int, bool) {
	key, _, ok := p.keys.RemoveOldest()
	return key, ok
}

// Len returns the number of tracked keys.
func (p *Policy) Len() int { return p.keys.Len() }

// Keys returns the tracked keys from least to most recently used.
func (p *Policy) Keys() []int { return p.keys.Keys() }

// Reset clears the tracked keys when keepKeys is false. LRU keeps no
// statistics, so resetting with keepKeys true changes nothing.
func (p *Policy) Reset(keepKeys bool) {
	if keepKeys {
		return
	}
	p.keys.Purge()
}
