package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

const (
	insertUserSQL     = `INSERT INTO users (username, password, membersince, admin) VALUES ($1, $2, $3, $4)`
	selectUserSQL     = `SELECT username, password, membersince, admin FROM users WHERE username = $1`
	updatePasswordSQL = `UPDATE users SET password = $1 WHERE username = $2`
	deleteUserSQL     = `DELETE FROM users WHERE username = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL, user.Username, user.Password, user.MemberSince, user.Admin)
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateUsername
	}
	return err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx, selectUserSQL, username).
		Scan(&user.Username, &user.Password, &user.MemberSince, &user.Admin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, digest string) error {
	_, err := r.pool.Exec(ctx, updatePasswordSQL, digest, username)
	return err
}

// UpdatePasswordKeepSession updates the digest and prunes every other session
// of the user in one transaction. The session used to authenticate the change
// must survive, all others must not.
func (r *UserRepository) UpdatePasswordKeepSession(ctx context.Context, username, digest, keepToken string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, updatePasswordSQL, digest, username); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteOthersForUserSQL, username, keepToken); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ResetPassword updates the digest and deletes every session of the user in
// one transaction.
func (r *UserRepository) ResetPassword(ctx context.Context, username, digest string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, updatePasswordSQL, digest, username); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteAllForUserSQL, username); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeleteWithSessions removes the user's sessions and then the account.
// Sessions go first so a crash mid-way cannot leave sessions for a deleted
// account. When the account row is absent the transaction rolls back and
// ErrUserNotFound is returned.
func (r *UserRepository) DeleteWithSessions(ctx context.Context, username string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteAllForUserSQL, username); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteUserSQL, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrUserNotFound
	}
	return tx.Commit(ctx)
}

var _ ports.UserRepository = (*UserRepository)(nil)
