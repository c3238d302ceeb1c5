package sim

import "errors"

// Expected, recoverable outcomes. The host decides retry/UI behaviour;
// none of these are faults.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotEligible       = errors.New("not eligible")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrNoActiveEvent     = errors.New("no active event")
	ErrUnknownChoice     = errors.New("unknown choice")
)
