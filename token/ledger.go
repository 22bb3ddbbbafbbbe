package token

import "math"

// Account identifies a balance holder. It is opaque to the ledger: the
// value is only ever compared and used as a map key, never parsed.
// Wallets produce addresses, but anything comparable works.
type Account string

// Ledger owns the balance map. Missing entries read as zero.
type Ledger struct {
	balances map[Account]uint64
}

func NewLedger() *Ledger {
	return &Ledger{balances: map[Account]uint64{}}
}

func (l *Ledger) BalanceOf(acc Account) uint64 {
	return l.balances[acc]
}

// Credit adds amount to the account using saturating addition: a sum
// that would exceed MaxUint64 clamps there instead of wrapping or
// failing. Clamping is the ledger's overflow policy, same as the mint
// path it was modeled on.
func (l *Ledger) Credit(acc Account, amount uint64) {
	cur := l.balances[acc]
	if cur > math.MaxUint64-amount {
		l.balances[acc] = math.MaxUint64
		return
	}
	l.balances[acc] = cur + amount
}

// Debit subtracts amount, failing with ErrInsufficientBalance when the
// balance cannot cover it. On failure the balance is untouched.
func (l *Ledger) Debit(acc Account, amount uint64) error {
	cur := l.balances[acc]
	if cur < amount {
		return ErrInsufficientBalance
	}
	l.balances[acc] = cur - amount
	return nil
}

// snapshot returns a copy of the balance map for persistence.
func (l *Ledger) snapshot() map[Account]uint64 {
	out := make(map[Account]uint64, len(l.balances))
	for acc, bal := range l.balances {
		out[acc] = bal
	}
	return out
}

func (l *Ledger) restore(balances map[Account]uint64) {
	l.balances = make(map[Account]uint64, len(balances))
	for acc, bal := range balances {
		l.balances[acc] = bal
	}
}
