package aid_errors

import "errors"

// Common errors
var (
	ErrDuplicateContact  = errors.New("user with this contact info already exists, please login")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrStoreFailure      = errors.New("store failure")
	ErrInvalidInput      = errors.New("invalid input")
	ErrRateLimited       = errors.New("rate limited")
	ErrNotConfigured     = errors.New("not configured")
)
