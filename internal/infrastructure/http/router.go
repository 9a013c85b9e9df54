// Package http wires the chi router for the authentication API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/http/handlers"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler  *handlers.AuthHandler
	AdminHandler *handlers.AdminHandler
	AliveHandler *handlers.AliveHandler
	RequireAuth  func(http.Handler) http.Handler // access-token auth for /admin/*
	Log          zerolog.Logger
	Secure       func(http.Handler) http.Handler
	Metrics      bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.AliveHandler != nil {
		r.Get("/alive", cfg.AliveHandler.Alive)
		r.Get("/alive/ready", cfg.AliveHandler.Ready)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Session lifecycle: the login endpoint is anonymous, the rest
	// authenticate through the refresh-token cookie inside the use-case.
	r.Post("/login", cfg.AuthHandler.Login)
	r.Delete("/logout", cfg.AuthHandler.Logout)
	r.Delete("/logout/other-sessions", cfg.AuthHandler.LogoutOthers)
	r.Get("/renew", cfg.AuthHandler.Renew)
	r.Put("/password", cfg.AuthHandler.ChangePassword)

	if cfg.AdminHandler != nil && cfg.RequireAuth != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Post("/user", cfg.AdminHandler.CreateUser)
			r.Delete("/user/{username}", cfg.AdminHandler.DeleteUser)
			r.Put("/user/{username}/password", cfg.AdminHandler.ResetPassword)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
