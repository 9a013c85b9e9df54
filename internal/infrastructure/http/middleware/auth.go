package middleware

import (
	"net/http"

	"github.com/hyecheol123/generic-auth-api/internal/application/ports"
)

// AccessTokenCookie carries the access token on every protected request.
const AccessTokenCookie = "X-ACCESS-TOKEN"

// AuthValidator validates the access-token cookie and sets the principal in
// the request context (see PrincipalFromContext). No storage round-trip:
// access tokens are self-contained.
type AuthValidator struct {
	tokens ports.TokenIssuer
}

func NewAuthValidator(tokens ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{tokens: tokens}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			writeUnauthorized(w)
			return
		}
		payload, err := m.tokens.VerifyAccessToken(cookie.Value)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), payload)))
	})
}

// RequireAdmin rejects requests whose principal does not carry the admin
// flag. Must run after AuthValidator. Non-admin callers get the same 401 as
// unauthenticated ones.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || !principal.Admin {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication failed"}`))
}
