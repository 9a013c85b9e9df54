package ports

import (
	"context"
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/domain"
)

// UserRepository defines persistence for accounts.
//
// The multi-write helpers exist because password changes and account deletion
// must update the users table and prune the sessions table inside one storage
// transaction; a crash must never leave a half-applied state visible.
type UserRepository interface {
	// Create inserts a new account. Returns errors.ErrDuplicateUsername when
	// the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername returns the account or errors.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdatePassword replaces the stored password digest.
	UpdatePassword(ctx context.Context, username, digest string) error

	// UpdatePasswordKeepSession replaces the digest and deletes every session
	// of the user except keepToken, atomically.
	UpdatePasswordKeepSession(ctx context.Context, username, digest, keepToken string) error

	// ResetPassword replaces the digest and deletes every session of the
	// user, atomically.
	ResetPassword(ctx context.Context, username, digest string) error

	// DeleteWithSessions removes the user's sessions and then the account in
	// one transaction. Returns errors.ErrUserNotFound when the account row
	// does not exist; no rows are touched in that case.
	DeleteWithSessions(ctx context.Context, username string) error
}

// SessionRepository defines persistence for refresh-token sessions, keyed by
// the raw token string.
type SessionRepository interface {
	// Create inserts a session. Returns errors.ErrDuplicateToken when the
	// token already exists.
	Create(ctx context.Context, session *domain.Session) error

	// GetByToken returns the session or errors.ErrSessionNotFound.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// Delete removes the session for token. The bool reports whether a row
	// was actually deleted.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteAllForUser removes every session of the user.
	DeleteAllForUser(ctx context.Context, username string) error

	// DeleteOthersForUser removes every session of the user except keepToken.
	DeleteOthersForUser(ctx context.Context, username, keepToken string) error

	// DeleteExpiredForUser removes the user's sessions whose expiry is at or
	// before asOf. Opportunistic growth bound, invoked after login.
	DeleteExpiredForUser(ctx context.Context, username string, asOf time.Time) error

	// Rotate atomically replaces oldToken's session with next. Returns
	// errors.ErrSessionNotFound when oldToken is already gone (e.g. a
	// concurrent rotation won); in that case next is not inserted.
	Rotate(ctx context.Context, oldToken string, next *domain.Session) error
}
