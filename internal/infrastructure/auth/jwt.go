package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

// TokenCodec implements ports.TokenIssuer with HS512 and two distinct keys,
// one per token kind. Every issued token carries a random jti so that two
// tokens minted for the same payload within the same second still differ;
// the session store keys on the raw token string and relies on this.
type TokenCodec struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Type     string `json:"type"`
	Admin    bool   `json:"admin,omitempty"`
}

func NewTokenCodec(accessKey, refreshKey []byte, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (c *TokenCodec) IssueAccessToken(payload domain.TokenPayload) (string, error) {
	token, _, err := c.sign(payload, domain.TokenTypeAccess, c.accessKey, c.accessTTL)
	return token, err
}

func (c *TokenCodec) IssueRefreshToken(payload domain.TokenPayload) (string, time.Time, error) {
	return c.sign(payload, domain.TokenTypeRefresh, c.refreshKey, c.refreshTTL)
}

func (c *TokenCodec) VerifyAccessToken(raw string) (domain.TokenPayload, error) {
	return c.verify(raw, domain.TokenTypeAccess, c.accessKey)
}

func (c *TokenCodec) VerifyRefreshToken(raw string) (domain.TokenPayload, error) {
	return c.verify(raw, domain.TokenTypeRefresh, c.refreshKey)
}

func (c *TokenCodec) sign(payload domain.TokenPayload, tokenType string, key []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: payload.Username,
		Type:     tokenType,
		Admin:    payload.Admin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// verify collapses every failure mode into ErrAuthenticationFailed so callers
// cannot distinguish a forged token from an expired one. Registered claims
// (iat, exp, jti) are stripped from the returned payload.
func (c *TokenCodec) verify(raw, wantType string, key []byte) (domain.TokenPayload, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domerrors.ErrAuthenticationFailed
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return domain.TokenPayload{}, domerrors.ErrAuthenticationFailed
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Type != wantType {
		return domain.TokenPayload{}, domerrors.ErrAuthenticationFailed
	}
	return domain.TokenPayload{
		Username: claims.Username,
		Type:     claims.Type,
		Admin:    claims.Admin,
	}, nil
}

var _ ports.TokenIssuer = (*TokenCodec)(nil)
