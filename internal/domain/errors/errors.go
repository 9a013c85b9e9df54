package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Authentication failures
// share a single sentinel on purpose: callers must not learn which check
// failed (missing account, bad password, bad signature, expired token, missing
// session all look identical).
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrDuplicateUsername    = errors.New("duplicated username")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateToken       = errors.New("duplicated refresh token")
	ErrSessionNotFound      = errors.New("session not found")
)
