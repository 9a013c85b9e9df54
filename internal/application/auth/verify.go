package auth

import (
	"context"
	"errors"
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

// DefaultRenewWindow is how close to expiry a refresh token must be before
// renewal rotates it.
const DefaultRenewWindow = 20 * time.Minute

// RefreshVerification is the outcome of a successful refresh-token check.
type RefreshVerification struct {
	Payload   domain.TokenPayload
	Session   *domain.Session
	NeedRenew bool
}

// RefreshVerifier checks a presented refresh token against both clocks: the
// signature's embedded expiry and the session store's persisted one. A token
// whose session row is gone or stale is rejected even when the signature
// still verifies.
type RefreshVerifier struct {
	tokens      ports.TokenIssuer
	sessions    ports.SessionRepository
	renewWindow time.Duration
}

func NewRefreshVerifier(tokens ports.TokenIssuer, sessions ports.SessionRepository, renewWindow time.Duration) *RefreshVerifier {
	if renewWindow <= 0 {
		renewWindow = DefaultRenewWindow
	}
	return &RefreshVerifier{
		tokens:      tokens,
		sessions:    sessions,
		renewWindow: renewWindow,
	}
}

func (v *RefreshVerifier) Verify(ctx context.Context, raw string) (*RefreshVerification, error) {
	if raw == "" {
		return nil, domerrors.ErrAuthenticationFailed
	}
	payload, err := v.tokens.VerifyRefreshToken(raw)
	if err != nil {
		return nil, domerrors.ErrAuthenticationFailed
	}

	session, err := v.sessions.GetByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, domerrors.ErrSessionNotFound) {
			return nil, domerrors.ErrAuthenticationFailed
		}
		return nil, err
	}

	now := time.Now()
	if session.Expired(now) {
		return nil, domerrors.ErrAuthenticationFailed
	}

	return &RefreshVerification{
		Payload:   payload,
		Session:   session,
		NeedRenew: session.ExpiresAt.Before(now.Add(v.renewWindow)),
	}, nil
}
