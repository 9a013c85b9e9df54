package ports

import (
	"time"

	"github.com/hyecheol123/generic-auth-api/internal/domain"
)

// PasswordHasher derives a stable credential digest. The salt is built from
// the username and the account's membership timestamp, so the same password
// hashes identically only while both stay unchanged.
type PasswordHasher interface {
	Hash(username string, memberSince time.Time, secret string) string
}

// TokenIssuer signs and verifies the two token kinds. Verification failures
// are uniform: any malformed, mistyped, expired or forged token surfaces as
// errors.ErrAuthenticationFailed.
type TokenIssuer interface {
	// IssueAccessToken signs payload as a short-lived access token. The
	// payload's Type is forced to "access".
	IssueAccessToken(payload domain.TokenPayload) (string, error)

	// IssueRefreshToken signs payload as a refresh token and returns the
	// token together with its expiry instant.
	IssueRefreshToken(payload domain.TokenPayload) (string, time.Time, error)

	// VerifyAccessToken checks signature, expiry and type "access" and
	// returns the embedded payload with registered claims stripped.
	VerifyAccessToken(raw string) (domain.TokenPayload, error)

	// VerifyRefreshToken is VerifyAccessToken for type "refresh".
	VerifyRefreshToken(raw string) (domain.TokenPayload, error)
}
