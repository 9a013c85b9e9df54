// Package admin holds the administrator-only account management use-cases.
// Authorization (an access token carrying the admin flag) is enforced by the
// transport layer before any of these run.
package admin

import (
	"context"
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
)

type CreateUserInput struct {
	Username    string
	Password    string
	MemberSince time.Time
	Admin       bool
}

type CreateUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewCreateUser(users ports.UserRepository, hasher ports.PasswordHasher) *CreateUser {
	return &CreateUser{users: users, hasher: hasher}
}

// Execute creates an account. The membership timestamp is truncated to whole
// seconds before it is used as salt material and before storage, so the two
// always agree. Returns errors.ErrDuplicateUsername on conflict.
func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) error {
	memberSince := input.MemberSince.UTC().Truncate(time.Second)
	digest := uc.hasher.Hash(input.Username, memberSince, input.Password)
	return uc.users.Create(ctx, &domain.User{
		Username:    input.Username,
		Password:    digest,
		MemberSince: memberSince,
		Admin:       input.Admin,
	})
}
