package security

import (
	"crypto/sha512"
	"encoding/base64"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
	"github.com/hyecheol123/generic-auth-api/internal/domain"
)

// PBKDF2Params configurable for hashing.
type PBKDF2Params struct {
	Iterations int
	KeyLength  int
}

// DefaultPBKDF2Params returns OWASP-recommended defaults for PBKDF2-SHA512
// with the 64-byte output the digest format requires.
func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{
		Iterations: 210000,
		KeyLength:  64,
	}
}

// PBKDF2Hasher implements ports.PasswordHasher. The per-user salt is the
// username concatenated with the membership timestamp in ISO-8601 form, so a
// digest is reproducible only while both are unchanged.
type PBKDF2Hasher struct {
	params PBKDF2Params
}

func NewPBKDF2Hasher(params PBKDF2Params) *PBKDF2Hasher {
	if params.Iterations <= 0 {
		params.Iterations = DefaultPBKDF2Params().Iterations
	}
	if params.KeyLength <= 0 {
		params.KeyLength = DefaultPBKDF2Params().KeyLength
	}
	return &PBKDF2Hasher{params: params}
}

func (h *PBKDF2Hasher) Hash(username string, memberSince time.Time, secret string) string {
	salt := username + domain.SaltTimestamp(memberSince)
	key := pbkdf2.Key([]byte(secret), []byte(salt), h.params.Iterations, h.params.KeyLength, sha512.New)
	return base64.StdEncoding.EncodeToString(key)
}

var _ ports.PasswordHasher = (*PBKDF2Hasher)(nil)
