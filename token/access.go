package token

// AccessControl owns the owner identity, the global pause flag and the
// blacklist. The owner is fixed at construction and never changes.
type AccessControl struct {
	owner     Account
	paused    bool
	blacklist map[Account]struct{}
}

func NewAccessControl(owner Account) *AccessControl {
	return &AccessControl{
		owner:     owner,
		blacklist: map[Account]struct{}{},
	}
}

func (a *AccessControl) Owner() Account { return a.owner }

func (a *AccessControl) Paused() bool { return a.paused }

func (a *AccessControl) Blacklisted(acc Account) bool {
	_, ok := a.blacklist[acc]
	return ok
}

func (a *AccessControl) RequireOwner(caller Account) error {
	if caller != a.owner {
		return ErrUnauthorized
	}
	return nil
}

func (a *AccessControl) SetPaused(caller Account, state bool) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	a.paused = state
	return nil
}

func (a *AccessControl) SetBlacklist(caller, acc Account, state bool) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	if state {
		a.blacklist[acc] = struct{}{}
	} else {
		delete(a.blacklist, acc)
	}
	return nil
}

// CheckTransferAllowed gates every balance-moving operation. The pause
// flag is checked before the blacklist, so a paused ledger reports
// ErrPaused even for blacklisted parties. Issue and destroy are not
// gated here.
func (a *AccessControl) CheckTransferAllowed(from, to Account) error {
	if a.paused {
		return ErrPaused
	}
	if a.Blacklisted(from) || a.Blacklisted(to) {
		return ErrBlacklisted
	}
	return nil
}

func (a *AccessControl) blacklistSnapshot() []Account {
	out := make([]Account, 0, len(a.blacklist))
	for acc := range a.blacklist {
		out = append(out, acc)
	}
	return out
}

func (a *AccessControl) restore(paused bool, blacklist []Account) {
	a.paused = paused
	a.blacklist = make(map[Account]struct{}, len(blacklist))
	for _, acc := range blacklist {
		a.blacklist[acc] = struct{}{}
	}
}
