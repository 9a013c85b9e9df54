package auth

import (
	"context"
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

// In-memory repositories backing the use-case tests. They mirror the
// sentinel-error contract of the postgres implementations.

type fakeUserRepo struct {
	users map[string]*domain.User
	// sessions is wired in so the transactional helpers can prune.
	sessions *fakeSessionRepo
}

func newFakeUserRepo(sessions *fakeSessionRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), sessions: sessions}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; ok {
		return domerrors.ErrDuplicateUsername
	}
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, domerrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, username, digest string) error {
	user, ok := r.users[username]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	user.Password = digest
	return nil
}

func (r *fakeUserRepo) UpdatePasswordKeepSession(ctx context.Context, username, digest, keepToken string) error {
	if err := r.UpdatePassword(ctx, username, digest); err != nil {
		return err
	}
	return r.sessions.DeleteOthersForUser(ctx, username, keepToken)
}

func (r *fakeUserRepo) ResetPassword(ctx context.Context, username, digest string) error {
	if err := r.UpdatePassword(ctx, username, digest); err != nil {
		return err
	}
	return r.sessions.DeleteAllForUser(ctx, username)
}

func (r *fakeUserRepo) DeleteWithSessions(ctx context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return domerrors.ErrUserNotFound
	}
	if err := r.sessions.DeleteAllForUser(ctx, username); err != nil {
		return err
	}
	delete(r.users, username)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	// cleanupErr, when set, is returned by DeleteExpiredForUser.
	cleanupErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	if _, ok := r.sessions[session.Token]; ok {
		return domerrors.ErrDuplicateToken
	}
	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, domerrors.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) (bool, error) {
	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

func (r *fakeSessionRepo) DeleteAllForUser(_ context.Context, username string) error {
	for token, session := range r.sessions {
		if session.Username == username {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteOthersForUser(_ context.Context, username, keepToken string) error {
	for token, session := range r.sessions {
		if session.Username == username && token != keepToken {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpiredForUser(_ context.Context, username string, asOf time.Time) error {
	if r.cleanupErr != nil {
		return r.cleanupErr
	}
	for token, session := range r.sessions {
		if session.Username == username && !session.ExpiresAt.After(asOf) {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) Rotate(_ context.Context, oldToken string, next *domain.Session) error {
	if _, ok := r.sessions[oldToken]; !ok {
		return domerrors.ErrSessionNotFound
	}
	delete(r.sessions, oldToken)
	if _, ok := r.sessions[next.Token]; ok {
		return domerrors.ErrDuplicateToken
	}
	clone := *next
	r.sessions[next.Token] = &clone
	return nil
}

func (r *fakeSessionRepo) countForUser(username string) int {
	n := 0
	for _, session := range r.sessions {
		if session.Username == username {
			n++
		}
	}
	return n
}
