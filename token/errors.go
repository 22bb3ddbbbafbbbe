package token

import "errors"

// Every failure mode the ledger can report. All are returned synchronously
// to the caller of the failing operation and none are fatal to the ledger.
var (
	ErrUnauthorized        = errors.New("unauthorized: owner only")
	ErrPaused              = errors.New("transfers paused")
	ErrBlacklisted         = errors.New("account blacklisted")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAllowanceExceeded   = errors.New("allowance exceeded")
	ErrLengthMismatch      = errors.New("recipients and amounts length mismatch")
)
