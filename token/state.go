package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/soden46/hyperlux-token/storage"
)

// Persisted state layout: whole-map JSON blobs under fixed keys, one per
// logical map, mirroring how the node has always stored its state.
const (
	keyBalances   = "balances"
	keyAllowances = "allowances"
	keyAccess     = "access"
)

// ErrNotInitialized is returned by LoadState when the store holds no
// ledger state yet.
var ErrNotInitialized = errors.New("ledger not initialized")

// AllowanceEntry is the persisted form of one (owner,spender) allowance.
type AllowanceEntry struct {
	Owner   Account `json:"owner"`
	Spender Account `json:"spender"`
	Amount  uint64  `json:"amount"`
}

type accessState struct {
	Owner       Account   `json:"owner"`
	Paused      bool      `json:"paused"`
	Blacklist   []Account `json:"blacklist"`
	TotalSupply uint64    `json:"total_supply"`
}

// State is a point-in-time copy of the whole ledger, safe to hold after
// the engine moves on.
type State struct {
	Owner       Account            `json:"owner"`
	Paused      bool               `json:"paused"`
	Blacklist   []Account          `json:"blacklist"`
	TotalSupply uint64             `json:"total_supply"`
	Balances    map[Account]uint64 `json:"balances"`
	Allowances  []AllowanceEntry   `json:"allowances"`
}

// Snapshot copies the full ledger state under the engine lock.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowances := make([]AllowanceEntry, 0)
	for key, amt := range e.allowances.snapshot() {
		allowances = append(allowances, AllowanceEntry{Owner: key.Owner, Spender: key.Spender, Amount: amt})
	}
	return State{
		Owner:       e.access.Owner(),
		Paused:      e.access.Paused(),
		Blacklist:   e.access.blacklistSnapshot(),
		TotalSupply: e.totalSupply,
		Balances:    e.ledger.snapshot(),
		Allowances:  allowances,
	}
}

// RestoreEngine rebuilds an engine from a snapshot. The snapshot's owner
// is bound as the engine owner.
func RestoreEngine(st State, sink Sink) *Engine {
	e := NewEngine(st.Owner, sink)
	e.ledger.restore(st.Balances)
	allowances := make(map[allowanceKey]uint64, len(st.Allowances))
	for _, entry := range st.Allowances {
		allowances[allowanceKey{entry.Owner, entry.Spender}] = entry.Amount
	}
	e.allowances.restore(allowances)
	e.access.restore(st.Paused, st.Blacklist)
	e.totalSupply = st.TotalSupply
	return e
}

// SaveState writes the engine snapshot to the store.
func SaveState(store storage.Store, e *Engine) error {
	st := e.Snapshot()

	balances, err := json.Marshal(st.Balances)
	if err != nil {
		return err
	}
	allowances, err := json.Marshal(st.Allowances)
	if err != nil {
		return err
	}
	access, err := json.Marshal(accessState{
		Owner:       st.Owner,
		Paused:      st.Paused,
		Blacklist:   st.Blacklist,
		TotalSupply: st.TotalSupply,
	})
	if err != nil {
		return err
	}

	if err := store.Put(keyBalances, balances); err != nil {
		return fmt.Errorf("save balances: %w", err)
	}
	if err := store.Put(keyAllowances, allowances); err != nil {
		return fmt.Errorf("save allowances: %w", err)
	}
	if err := store.Put(keyAccess, access); err != nil {
		return fmt.Errorf("save access state: %w", err)
	}
	return nil
}

// LoadState rebuilds an engine from the store. A store with no access
// blob reports ErrNotInitialized.
func LoadState(store storage.Store, sink Sink) (*Engine, error) {
	raw, err := store.Get(keyAccess)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	var access accessState
	if err := json.Unmarshal(raw, &access); err != nil {
		return nil, fmt.Errorf("load access state: %w", err)
	}

	st := State{
		Owner:       access.Owner,
		Paused:      access.Paused,
		Blacklist:   access.Blacklist,
		TotalSupply: access.TotalSupply,
		Balances:    map[Account]uint64{},
	}

	if raw, err := store.Get(keyBalances); err == nil {
		if err := json.Unmarshal(raw, &st.Balances); err != nil {
			return nil, fmt.Errorf("load balances: %w", err)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if raw, err := store.Get(keyAllowances); err == nil {
		if err := json.Unmarshal(raw, &st.Allowances); err != nil {
			return nil, fmt.Errorf("load allowances: %w", err)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	return RestoreEngine(st, sink), nil
}
