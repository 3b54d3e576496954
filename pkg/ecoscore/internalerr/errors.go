package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyDescription = errors.New("empty description")
	ErrCorruptProfile   = errors.New("corrupt stored profile")
	ErrPersistence      = errors.New("persistence failure")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
