// Package policy defines the eviction bookkeeping interface shared by all
// cache replacement policies.
//
// A Policy tracks only keys; the cache owns the contents. The cache keeps
// the two in lockstep: a key is admitted exactly when its entry is inserted
// and removed exactly when its entry is evicted, so Keys() always mirrors
// the resident set.
package policy

// Policy records the per-key information a replacement policy needs to pick
// an eviction victim.
type Policy interface {
	// Name returns the policy name (e.g. "fifo").
	Name() string

	// Touch records a hit on a resident key.
	Touch(key int)

	// Admit records the insertion of a new key.
	Admit(key int)

	// Evict selects a victim, removes it from the bookkeeping, and returns
	// it. Returns false if no key is tracked.
	Evict() (int, bool)

	// Len returns the number of tracked keys.
	Len() int

	// Keys returns the tracked keys in unspecified order.
	Keys() []int

	// Reset clears the policy's statistics (logical clocks, frequency
	// counts). If keepKeys is false it also forgets every tracked key,
	// returning the policy to its freshly constructed state.
	Reset(keepKeys bool)
}
