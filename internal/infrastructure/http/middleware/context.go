package middleware

import (
	"context"

	"github.com/hyecheol123/generic-auth-api/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the authenticated token payload into the context.
func WithPrincipal(ctx context.Context, payload domain.TokenPayload) context.Context {
	return context.WithValue(ctx, principalContextKey, payload)
}

// PrincipalFromContext returns the authenticated token payload, if any.
func PrincipalFromContext(ctx context.Context) (domain.TokenPayload, bool) {
	v := ctx.Value(principalContextKey)
	if v == nil {
		return domain.TokenPayload{}, false
	}
	p, ok := v.(domain.TokenPayload)
	return p, ok
}
