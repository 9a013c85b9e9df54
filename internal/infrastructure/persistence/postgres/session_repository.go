package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

const (
	insertSessionSQL        = `INSERT INTO sessions (token, expires_at, username) VALUES ($1, $2, $3)`
	selectSessionSQL        = `SELECT token, expires_at, username FROM sessions WHERE token = $1`
	deleteSessionSQL        = `DELETE FROM sessions WHERE token = $1`
	deleteAllForUserSQL     = `DELETE FROM sessions WHERE username = $1`
	deleteOthersForUserSQL  = `DELETE FROM sessions WHERE username = $1 AND token <> $2`
	deleteExpiredForUserSQL = `DELETE FROM sessions WHERE username = $1 AND expires_at <= $2`
)

// uniqueViolation is the only persistence error code the repositories inspect.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.pool.Exec(ctx, insertSessionSQL, session.Token, session.ExpiresAt, session.Username)
	if isUniqueViolation(err) {
		return domerrors.ErrDuplicateToken
	}
	return err
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.pool.QueryRow(ctx, selectSessionSQL, token).
		Scan(&session.Token, &session.ExpiresAt, &session.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domerrors.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteSessionSQL, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, deleteAllForUserSQL, username)
	return err
}

func (r *SessionRepository) DeleteOthersForUser(ctx context.Context, username, keepToken string) error {
	_, err := r.pool.Exec(ctx, deleteOthersForUserSQL, username, keepToken)
	return err
}

func (r *SessionRepository) DeleteExpiredForUser(ctx context.Context, username string, asOf time.Time) error {
	_, err := r.pool.Exec(ctx, deleteExpiredForUserSQL, username, asOf)
	return err
}

// Rotate replaces oldToken's row with next in one transaction. When oldToken
// is already gone the transaction rolls back and ErrSessionNotFound is
// returned, so a losing concurrent renewal never inserts a stray session.
func (r *SessionRepository) Rotate(ctx context.Context, oldToken string, next *domain.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, deleteSessionSQL, oldToken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrSessionNotFound
	}
	if _, err := tx.Exec(ctx, insertSessionSQL, next.Token, next.ExpiresAt, next.Username); err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrDuplicateToken
		}
		return err
	}
	return tx.Commit(ctx)
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
