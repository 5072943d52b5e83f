// Package mrupolicy implements most-recently-used eviction.
//
// This is the inverse of the conventional recency policy: the victim is the
// key touched most recently among the resident keys. It deliberately
// penalizes items that were just used, for workloads where a
// recently-touched document is unlikely to be read again soon.
package mrupolicy

import (
	"container/list"

	"github.com/textshelf/shelf/internal/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy implements MRU eviction.
type Policy struct {
	order    *list.List // front = least recent, back = most recent
	elements map[int]*list.Element
}

// New creates a new MRU policy.
func New() *Policy {
	return &Policy{
		order:    list.New(),
		elements: make(map[int]*list.Element),
	}
}

// Name returns "mru".
func (p *Policy) Name() string { return "mru" }

// Touch moves the key to the most-recent end.
func (p *Policy) Touch(key int) {
	if el, ok := p.elements[key]; ok {
		p.order.MoveToBack(el)
	}
}

// Admit places the key at the most-recent end.
func (p *Policy) Admit(key int) {
	if el, ok := p.elements[key]; ok {
		p.order.MoveToBack(el)
		return
	}
	p.elements[key] = p.order.PushBack(key)
}

// Evict removes and returns the most recently used key.
// Eviction runs before the incoming key is admitted, so the victim is the
// previously most-recent resident, never the key being inserted.
func (p *Policy) Evict() (int, bool) {
	el := p.order.Back()
	if el == nil {
		return 0, false
	}
	key := el.Value.(int)
	p.order.Remove(el)
	delete(p.elements, key)
	return key, true
}

// Len returns the number of tracked keys.
func (p *Policy) Len() int { return p.order.Len() }

// Keys returns the tracked keys from least to most recently used.
func (p *Policy) Keys() []int {
	keys := make([]int, 0, p.order.Len())
	for el := p.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(int))
	}
	return keys
}

// Reset clears the recency order when keepKeys is false. MRU keeps no
// statistics, so resetting with keepKeys true changes nothing.
func (p *Policy) Reset(keepKeys bool) {
	if keepKeys {
		return
	}
	p.order.Init()
	p.elements = make(map[int]*list.Element)
}
