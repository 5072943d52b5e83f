package fifopolicy

import (
	"testing"
)

func TestPolicy_EvictsOldest(t *testing.T) {
	p := New()
	for _, key := range []int{1, 2, 3} {
		p.Admit(key)
	}

	victim, ok := p.Evict()
	if !ok {
		t.Fatal("Evict() returned no victim")
	}
	if victim != 1 {
		t.Errorf("Evict() = %d, want 1 (first inserted)", victim)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d after eviction, want 2", p.Len())
	}
}

func TestPolicy_HitsDoNotReorder(t *testing.T) {
	p := New()
	for _, key := range []int{1, 2, 3} {
		p.Admit(key)
	}

	// Hits on later keys must not protect the oldest.
	p.Touch(1)
	p.Touch(1)
	p.Touch(3)

	victim, _ := p.Evict()
	if victim != 1 {
		t.Errorf("Evict() = %d after hits, want 1 (arrival order only)", victim)
	}
}

func TestPolicy_EvictionOrder(t *testing.T) {
	p := New()
	for _, key := range []int{7, 5, 9} {
		p.Admit(key)
	}

	want := []int{7, 5, 9}
	for i, wantKey := range want {
		victim, ok := p.Evict()
		if !ok || victim != wantKey {
			t.Errorf("Evict() #%d = %d, %v; want %d, true", i+1, victim, ok, wantKey)
		}
	}

	if _, ok := p.Evict(); ok {
		t.Error("Evict() on empty policy returned a victim")
	}
}

func TestPolicy_AdmitTwiceKeepsFirstPosition(t *testing.T) {
	p := New()
	p.Admit(1)
	p.Admit(2)
	p.Admit(1) // no-op

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	victim, _ := p.Evict()
	if victim != 1 {
		t.Errorf("Evict() = %d, want 1", victim)
	}
}

func TestPolicy_Reset(t *testing.T) {
	p := New()
	p.Admit(1)
	p.Admit(2)

	p.Reset(true)
	if p.Len() != 2 {
		t.Errorf("Reset(true) dropped keys: Len() = %d, want 2", p.Len())
	}

	p.Reset(false)
	if p.Len() != 0 {
		t.Errorf("Reset(false) kept keys: Len() = %d, want 0", p.Len())
	}
	if _, ok := p.Evict(); ok {
		t.Error("Evict() after Reset(false) returned a victim")
	}
}
