package domain

import "errors"

// Failure kinds shared by every entry point. Layers wrap them with
// fmt.Errorf("%w: detail", Err...) so callers can branch with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrPastDate            = errors.New("date is in the past")
	ErrDateBlocked         = errors.New("date is blocked")
	ErrCapacityExceeded    = errors.New("daily capacity exceeded")
	ErrSlotTaken           = errors.New("time slot already taken")
	ErrPaymentRequired     = errors.New("payment required before approval")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
	ErrAccessDenied        = errors.New("access denied")
)
