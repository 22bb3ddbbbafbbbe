package token

import (
	"errors"
	"math"
	"testing"
)

func TestBalanceOfDefaultsToZero(t *testing.T) {
	l := NewLedger()
	if got := l.BalanceOf("nobody"); got != 0 {
		t.Fatalf("BalanceOf(missing) = %d, want 0", got)
	}
}

func TestCreditAndDebit(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", 100)
	if got := l.BalanceOf("alice"); got != 100 {
		t.Fatalf("balance = %d, want 100", got)
	}
	if err := l.Debit("alice", 40); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if got := l.BalanceOf("alice"); got != 60 {
		t.Fatalf("balance = %d, want 60", got)
	}
}

func TestCreditSaturates(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", math.MaxUint64-5)
	l.Credit("alice", 10)
	if got := l.BalanceOf("alice"); got != math.MaxUint64 {
		t.Fatalf("balance = %d, want MaxUint64", got)
	}
	// saturated balance stays put on further credits
	l.Credit("alice", 1)
	if got := l.BalanceOf("alice"); got != math.MaxUint64 {
		t.Fatalf("balance = %d, want MaxUint64", got)
	}
}

func TestDebitInsufficient(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", 30)
	err := l.Debit("alice", 31)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if got := l.BalanceOf("alice"); got != 30 {
		t.Fatalf("failed debit changed balance: %d", got)
	}
}

func TestDebitExactBalance(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", 30)
	if err := l.Debit("alice", 30); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if got := l.BalanceOf("alice"); got != 0 {
		t.Fatalf("balance = %d, want 0", got)
	}
}
