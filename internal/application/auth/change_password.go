package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

type ChangePasswordInput struct {
	RefreshToken    string
	CurrentPassword string
	NewPassword     string
}

type ChangePassword struct {
	verifier *RefreshVerifier
	users    ports.UserRepository
	hasher   ports.PasswordHasher
}

func NewChangePassword(verifier *RefreshVerifier, users ports.UserRepository, hasher ports.PasswordHasher) *ChangePassword {
	return &ChangePassword{
		verifier: verifier,
		users:    users,
		hasher:   hasher,
	}
}

// Authorize checks the presented refresh token and returns the caller's
// username. The handler runs it before reading the request body, so an
// unauthenticated caller sees the uniform authentication failure regardless
// of what the body contains.
func (uc *ChangePassword) Authorize(ctx context.Context, refreshToken string) (string, error) {
	verification, err := uc.verifier.Verify(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	return verification.Payload.Username, nil
}

// Execute replaces the caller's password digest and logs out every other
// session in the same transaction. The salt comes from the stored membership
// timestamp and never changes for an existing account.
func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) error {
	verification, err := uc.verifier.Verify(ctx, input.RefreshToken)
	if err != nil {
		return err
	}

	user, err := uc.users.GetByUsername(ctx, verification.Payload.Username)
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			return domerrors.ErrAuthenticationFailed
		}
		return err
	}

	currentDigest := uc.hasher.Hash(user.Username, user.MemberSince, input.CurrentPassword)
	if subtle.ConstantTimeCompare([]byte(currentDigest), []byte(user.Password)) != 1 {
		return domerrors.ErrAuthenticationFailed
	}

	newDigest := uc.hasher.Hash(user.Username, user.MemberSince, input.NewPassword)
	return uc.users.UpdatePasswordKeepSession(ctx, user.Username, newDigest, input.RefreshToken)
}
