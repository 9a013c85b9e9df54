// Package auth holds the session/token lifecycle use-cases: login, the
// refresh-token verification shared by every session-management operation,
// renewal, logout variants and self-service password change.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Login struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	log      zerolog.Logger
}

func NewLogin(users ports.UserRepository, sessions ports.SessionRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *Login {
	return &Login{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			// Same error as a wrong password; do not reveal existence.
			return nil, domerrors.ErrAuthenticationFailed
		}
		return nil, err
	}

	digest := uc.hasher.Hash(user.Username, user.MemberSince, input.Password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.Password)) != 1 {
		return nil, domerrors.ErrAuthenticationFailed
	}

	payload := domain.TokenPayload{Username: user.Username, Admin: user.Admin}
	accessToken, err := uc.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	refreshToken, expiresAt, err := uc.tokens.IssueRefreshToken(payload)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Create(ctx, &domain.Session{
		Token:     refreshToken,
		ExpiresAt: expiresAt,
		Username:  user.Username,
	}); err != nil {
		return nil, err
	}

	// Opportunistic cleanup of this user's already-expired sessions. A
	// failure here must never fail the login.
	if err := uc.sessions.DeleteExpiredForUser(ctx, user.Username, time.Now()); err != nil {
		uc.log.Warn().Err(err).Str("username", user.Username).Msg("expired session cleanup failed")
	}

	return &LoginResult{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}
