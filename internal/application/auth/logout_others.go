package auth

import (
	"context"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
)

type LogoutOthers struct {
	verifier *RefreshVerifier
	sessions ports.SessionRepository
}

func NewLogoutOthers(verifier *RefreshVerifier, sessions ports.SessionRepository) *LogoutOthers {
	return &LogoutOthers{verifier: verifier, sessions: sessions}
}

// Execute ends every session of the caller except the one bound to the
// presented refresh token.
func (uc *LogoutOthers) Execute(ctx context.Context, refreshToken string) error {
	verification, err := uc.verifier.Verify(ctx, refreshToken)
	if err != nil {
		return err
	}
	return uc.sessions.DeleteOthersForUser(ctx, verification.Payload.Username, refreshToken)
}
