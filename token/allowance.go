package token

// allowanceKey is the ordered (owner, spender) pair. Allowances are
// directional: (A,B) and (B,A) are independent entries.
type allowanceKey struct {
	Owner   Account
	Spender Account
}

// AllowanceRegistry owns the (owner,spender) -> amount map.
type AllowanceRegistry struct {
	allowances map[allowanceKey]uint64
}

func NewAllowanceRegistry() *AllowanceRegistry {
	return &AllowanceRegistry{allowances: map[allowanceKey]uint64{}}
}

func (r *AllowanceRegistry) Allowance(owner, spender Account) uint64 {
	return r.allowances[allowanceKey{owner, spender}]
}

// Set overwrites the allowance unconditionally. Two consecutive calls
// leave the second value, not the sum. A spender that observed the first
// value can race the owner's second call; that overwrite semantic is
// deliberate and callers who care must set zero first.
func (r *AllowanceRegistry) Set(owner, spender Account, amount uint64) {
	r.allowances[allowanceKey{owner, spender}] = amount
}

// Consume decrements the allowance, failing with ErrAllowanceExceeded
// when the remaining allowance cannot cover amount.
func (r *AllowanceRegistry) Consume(owner, spender Account, amount uint64) error {
	key := allowanceKey{owner, spender}
	cur := r.allowances[key]
	if cur < amount {
		return ErrAllowanceExceeded
	}
	r.allowances[key] = cur - amount
	return nil
}

func (r *AllowanceRegistry) snapshot() map[allowanceKey]uint64 {
	out := make(map[allowanceKey]uint64, len(r.allowances))
	for key, amt := range r.allowances {
		out[key] = amt
	}
	return out
}

func (r *AllowanceRegistry) restore(allowances map[allowanceKey]uint64) {
	r.allowances = make(map[allowanceKey]uint64, len(allowances))
	for key, amt := range allowances {
		r.allowances[key] = amt
	}
}
