package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders adds security headers to every response. The API serves JSON
// to cookie-bearing clients and renders nothing, so the CSP denies all
// sources and framing. Development mode relaxes the checks for plain-HTTP
// local runs.
func SecureHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	})
	return s.Handler
}
