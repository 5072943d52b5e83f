package lfupolicy

import (
	"slices"
	"testing"
)

func TestPolicy_EvictsLeastFrequent(t *testing.T) {
	// Access sequence 1,2,3,1,2: keys 1 and 2 reach frequency 2, key 3
	// stays at 1 and must be the victim.
	p := New()
	for _, key := range []int{1, 2, 3} {
		p.Admit(key)
	}
	p.Touch(1)
	p.Touch(2)

	victim, ok := p.Evict()
	if !ok {
		t.Fatal("Evict() returned no victim")
	}
	if victim != 3 {
		t.Errorf("Evict() = %d, want 3 (sole frequency-1 key)", victim)
	}

	keys := p.Keys()
	slices.Sort(keys)
	if !slices.Equal(keys, []int{1, 2}) {
		t.Errorf("Keys() = %v, want [1 2]", keys)
	}
	if got := p.Freq(1); got != 2 {
		t.Errorf("Freq(1) = %d, want 2", got)
	}
}

func TestPolicy_TieBrokenByRecency(t *testing.T) {
	// All three keys share frequency 1; the earliest-stamped key loses.
	p := New()
	for _, key := range []int{5, 6, 7} {
		p.Admit(key)
	}

	victim, _ := p.Evict()
	if victim != 5 {
		t.Errorf("Evict() = %d, want 5 (least recently touched)", victim)
	}
}

func TestPolicy_TouchRefreshesTieBreak(t *testing.T) {
	p := New()
	for _, key := range []int{5, 6, 7} {
		p.Admit(key)
	}
	// 5 and 6 move to frequency 2; 5 touched after 6, so when only they
	// remain, 6 is the older of the two.
	p.Touch(6)
	p.Touch(5)

	victim, _ := p.Evict()
	if victim != 7 {
		t.Fatalf("Evict() = %d, want 7 (frequency 1)", victim)
	}
	victim, _ = p.Evict()
	if victim != 6 {
		t.Errorf("Evict() = %d, want 6 (tie broken by timestamp)", victim)
	}
}

func TestPolicy_EvictRemovesAllBookkeeping(t *testing.T) {
	p := New()
	p.Admit(1)

	victim, _ := p.Evict()
	if victim != 1 {
		t.Fatalf("Evict() = %d, want 1", victim)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after eviction, want 0", p.Len())
	}
	if len(p.stamp) != 0 {
		t.Errorf("timestamp table has %d entries after eviction, want 0", len(p.stamp))
	}
}

func TestPolicy_EvictEmpty(t *testing.T) {
	p := New()
	if _, ok := p.Evict(); ok {
		t.Error("Evict() on empty policy returned a victim")
	}
}

func TestPolicy_Reset(t *testing.T) {
	p := New()
	p.Admit(1)
	p.Touch(1)

	p.Reset(true)
	if p.Len() != 1 {
		t.Errorf("Reset(true) dropped keys: Len() = %d, want 1", p.Len())
	}
	if p.clock != 0 {
		t.Errorf("Reset(true) kept clock = %d, want 0", p.clock)
	}

	p.Reset(false)
	if p.Len() != 0 {
		t.Errorf("Reset(false) kept keys: Len() = %d, want 0", p.Len())
	}
}
