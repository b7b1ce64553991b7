package core

import "errors"

// Validation errors raised at construction time. Callers translate these into
// user-facing messages or HTTP status codes; core never formats user text.
var (
	ErrInvalidAmount         = errors.New("invalid monetary amount")
	ErrInvalidKind           = errors.New("invalid transaction kind")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidInvestmentType = errors.New("invalid investment type")
	ErrNonPositiveAmount     = errors.New("amount must be positive")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrEmptyDescription      = errors.New("empty description")
	ErrEmptyOwner            = errors.New("empty owner id")
	ErrEmptyField            = errors.New("required field is empty")
	ErrInvalidHorizon        = errors.New("invalid simulation horizon")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrWeakPassword          = errors.New("password too short")
)
