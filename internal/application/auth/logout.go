package auth

import (
	"context"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

type Logout struct {
	verifier *RefreshVerifier
	sessions ports.SessionRepository
}

func NewLogout(verifier *RefreshVerifier, sessions ports.SessionRepository) *Logout {
	return &Logout{verifier: verifier, sessions: sessions}
}

// Execute ends the session bound to the presented refresh token. A token
// whose session is already gone is an authentication error, not a no-op:
// reuse of a logged-out token must surface as 401.
func (uc *Logout) Execute(ctx context.Context, refreshToken string) error {
	if _, err := uc.verifier.Verify(ctx, refreshToken); err != nil {
		return err
	}
	deleted, err := uc.sessions.Delete(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrAuthenticationFailed
	}
	return nil
}
