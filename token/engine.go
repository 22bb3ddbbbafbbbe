package token

import (
	"math"
	"sync"
)

// Engine composes the ledger, the allowance registry and access control
// into the public operation set. Every operation runs under one engine
// lock, so each call is an atomic unit of work over the shared state and
// the components themselves need no locking. Events go to the sink only
// after the mutation has committed.
type Engine struct {
	mu         sync.RWMutex
	ledger     *Ledger
	allowances *AllowanceRegistry
	access     *AccessControl
	sink       Sink

	// issued minus destroyed; equals the sum of all balances.
	totalSupply uint64
}

// NewEngine constructs the ledger state with the caller bound as owner,
// empty maps and paused=false. A nil sink drops events.
func NewEngine(owner Account, sink Sink) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		ledger:     NewLedger(),
		allowances: NewAllowanceRegistry(),
		access:     NewAccessControl(owner),
		sink:       sink,
	}
}

func (e *Engine) Owner() Account {
	return e.access.Owner()
}

func (e *Engine) BalanceOf(acc Account) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.BalanceOf(acc)
}

func (e *Engine) Allowance(owner, spender Account) uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.allowances.Allowance(owner, spender)
}

// TotalSupply reports issued minus destroyed tokens. Transfers never
// change it; only Issue and Destroy do.
func (e *Engine) TotalSupply() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalSupply
}

func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Paused()
}

func (e *Engine) Blacklisted(acc Account) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.access.Blacklisted(acc)
}

// Issue mints amount to an account. Owner only. The credit saturates at
// MaxUint64; the supply counter moves by the amount actually credited so
// the conservation invariant survives clamping.
func (e *Engine) Issue(caller, to Account, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.RequireOwner(caller); err != nil {
		return err
	}
	before := e.ledger.BalanceOf(to)
	e.ledger.Credit(to, amount)
	delta := e.ledger.BalanceOf(to) - before
	if e.totalSupply > math.MaxUint64-delta {
		e.totalSupply = math.MaxUint64
	} else {
		e.totalSupply += delta
	}

	e.sink.Emit(Event{Kind: EventIssue, To: to, Amount: amount})
	return nil
}

// Destroy burns amount from the caller's own holdings.
func (e *Engine) Destroy(caller Account, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ledger.Debit(caller, amount); err != nil {
		return err
	}
	if e.totalSupply < amount {
		e.totalSupply = 0
	} else {
		e.totalSupply -= amount
	}

	e.sink.Emit(Event{Kind: EventDestroy, From: caller, Amount: amount})
	return nil
}

// Transfer moves amount from the caller to another account. The pause
// and blacklist gate runs first; if the debit fails the credit is never
// attempted, so the balance total is unchanged on every path.
func (e *Engine) Transfer(caller, to Account, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transferLocked(caller, to, amount)
}

func (e *Engine) transferLocked(from, to Account, amount uint64) error {
	if err := e.access.CheckTransferAllowed(from, to); err != nil {
		return err
	}
	if err := e.ledger.Debit(from, amount); err != nil {
		return err
	}
	e.ledger.Credit(to, amount)

	e.sink.Emit(Event{Kind: EventTransfer, From: from, To: to, Amount: amount})
	return nil
}

// Delegate overwrites the caller's allowance for a spender. There is no
// balance check: approving more than the current balance is allowed, as
// with standard allowance semantics. Never fails.
func (e *Engine) Delegate(caller, spender Account, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.allowances.Set(caller, spender, amount)

	e.sink.Emit(Event{Kind: EventDelegate, From: caller, To: spender, Amount: amount})
	return nil
}

// DelegatedTransfer spends the caller's allowance on the from account.
// The allowance is consumed before the balance is checked, so an
// allowance failure is reported even when the balance would also be
// short. If the later debit fails the consumed allowance is restored, so
// failed calls leave no trace.
func (e *Engine) DelegatedTransfer(caller, from, to Account, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.CheckTransferAllowed(from, to); err != nil {
		return err
	}
	if err := e.allowances.Consume(from, caller, amount); err != nil {
		return err
	}
	if err := e.ledger.Debit(from, amount); err != nil {
		// roll the allowance back; the op must commit fully or not at all
		e.allowances.Set(from, caller, e.allowances.Allowance(from, caller)+amount)
		return err
	}
	e.ledger.Credit(to, amount)

	e.sink.Emit(Event{Kind: EventTransfer, From: from, To: to, Amount: amount})
	return nil
}

// SetPaused flips the global pause flag. Owner only.
func (e *Engine) SetPaused(caller Account, state bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.access.SetPaused(caller, state)
}

// SetBlacklist sets or clears blacklist membership. Owner only.
func (e *Engine) SetBlacklist(caller, acc Account, state bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.access.SetBlacklist(caller, acc, state)
}

// BatchTransfer applies transfers in order and stops at the first
// failure, returning that element's error. Earlier elements stay
// committed: the batch is not transactional, only its elements are.
// A length mismatch is rejected up front with no state touched.
func (e *Engine) BatchTransfer(caller Account, recipients []Account, amounts []uint64) error {
	if len(recipients) != len(amounts) {
		return ErrLengthMismatch
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range recipients {
		if err := e.transferLocked(caller, recipients[i], amounts[i]); err != nil {
			return err
		}
	}
	return nil
}
