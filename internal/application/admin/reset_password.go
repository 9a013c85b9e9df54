package admin

import (
	"context"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
)

type ResetPasswordInput struct {
	Username    string
	NewPassword string
}

type ResetPassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewResetPassword(users ports.UserRepository, hasher ports.PasswordHasher) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher}
}

// Execute sets a new password digest for the target account and deletes all
// of its sessions. Unlike the self-service change there is no current session
// to preserve. Returns errors.ErrUserNotFound when the target is absent.
func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) error {
	user, err := uc.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	digest := uc.hasher.Hash(user.Username, user.MemberSince, input.NewPassword)
	return uc.users.ResetPassword(ctx, user.Username, digest)
}
