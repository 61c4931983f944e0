package domain

import "errors"

// Domain errors (no external dependencies). Every rejected operation maps to
// one of these so the caller can render an actionable message.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInsufficientBalance  = errors.New("insufficient closing balance")
	ErrTotalMismatch        = errors.New("sale total does not match sum of line totals")
	ErrDuplicateReference   = errors.New("duplicate reference number")
	ErrPriorPeriodUnsettled = errors.New("an earlier period is still unsettled")
	ErrAlreadyLocked        = errors.New("period settlement is already locked")
)
