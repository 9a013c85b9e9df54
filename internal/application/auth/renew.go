package auth

import (
	"context"
	"errors"
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

type RenewInput struct {
	RefreshToken string
}

type RenewResult struct {
	AccessToken string
	// Rotated reports whether a new refresh token was minted; RefreshToken
	// and RefreshExpiresAt are only set in that case.
	Rotated          bool
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Renew struct {
	verifier *RefreshVerifier
	users    ports.UserRepository
	sessions ports.SessionRepository
	tokens   ports.TokenIssuer
}

func NewRenew(verifier *RefreshVerifier, users ports.UserRepository, sessions ports.SessionRepository, tokens ports.TokenIssuer) *Renew {
	return &Renew{
		verifier: verifier,
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (uc *Renew) Execute(ctx context.Context, input RenewInput) (*RenewResult, error) {
	verification, err := uc.verifier.Verify(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}

	// The account may have been deleted after the token was issued.
	user, err := uc.users.GetByUsername(ctx, verification.Payload.Username)
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			return nil, domerrors.ErrAuthenticationFailed
		}
		return nil, err
	}

	payload := domain.TokenPayload{Username: user.Username, Admin: user.Admin}
	result := &RenewResult{}

	if verification.NeedRenew {
		refreshToken, expiresAt, err := uc.tokens.IssueRefreshToken(payload)
		if err != nil {
			return nil, err
		}
		err = uc.sessions.Rotate(ctx, input.RefreshToken, &domain.Session{
			Token:     refreshToken,
			ExpiresAt: expiresAt,
			Username:  user.Username,
		})
		if err != nil {
			if errors.Is(err, domerrors.ErrSessionNotFound) {
				// A concurrent renewal already consumed the old token.
				return nil, domerrors.ErrAuthenticationFailed
			}
			return nil, err
		}
		result.Rotated = true
		result.RefreshToken = refreshToken
		result.RefreshExpiresAt = expiresAt
	}

	accessToken, err := uc.tokens.IssueAccessToken(payload)
	if err != nil {
		return nil, err
	}
	result.AccessToken = accessToken
	return result, nil
}
