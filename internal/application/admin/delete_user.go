package admin

import (
	"context"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
)

type DeleteUser struct {
	users ports.UserRepository
}

func NewDeleteUser(users ports.UserRepository) *DeleteUser {
	return &DeleteUser{users: users}
}

// Execute removes the account and every session it owns. Sessions go first:
// a crash mid-way leaves an account with no valid sessions rather than
// dangling sessions for a deleted account. Returns errors.ErrUserNotFound
// when the account does not exist; nothing is touched in that case.
func (uc *DeleteUser) Execute(ctx context.Context, username string) error {
	return uc.users.DeleteWithSessions(ctx, username)
}
