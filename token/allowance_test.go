package token

import (
	"errors"
	"testing"
)

func TestAllowanceDefaultsToZero(t *testing.T) {
	r := NewAllowanceRegistry()
	if got := r.Allowance("alice", "bob"); got != 0 {
		t.Fatalf("Allowance = %d, want 0", got)
	}
}

func TestSetOverwritesInsteadOfAccumulating(t *testing.T) {
	r := NewAllowanceRegistry()
	r.Set("alice", "carol", 100)
	r.Set("alice", "carol", 30)
	if got := r.Allowance("alice", "carol"); got != 30 {
		t.Fatalf("Allowance = %d, want 30 (overwrite, not 130)", got)
	}
}

func TestAllowancesAreDirectional(t *testing.T) {
	r := NewAllowanceRegistry()
	r.Set("alice", "bob", 50)
	if got := r.Allowance("bob", "alice"); got != 0 {
		t.Fatalf("reverse pair allowance = %d, want 0", got)
	}
}

func TestConsume(t *testing.T) {
	r := NewAllowanceRegistry()
	r.Set("alice", "carol", 50)

	if err := r.Consume("alice", "carol", 20); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if got := r.Allowance("alice", "carol"); got != 30 {
		t.Fatalf("Allowance = %d, want 30", got)
	}

	err := r.Consume("alice", "carol", 31)
	if !errors.Is(err, ErrAllowanceExceeded) {
		t.Fatalf("err = %v, want ErrAllowanceExceeded", err)
	}
	if got := r.Allowance("alice", "carol"); got != 30 {
		t.Fatalf("failed consume changed allowance: %d", got)
	}
}
