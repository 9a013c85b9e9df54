package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	adminuc "github.com/hyecheol123/generic-auth-api/internal/application/admin"
	authuc "github.com/hyecheol123/generic-auth-api/internal/application/auth"
	"github.com/hyecheol123/generic-auth-api/internal/config"
	infraauth "github.com/hyecheol123/generic-auth-api/internal/infrastructure/auth"
	httprouter "github.com/hyecheol123/generic-auth-api/internal/infrastructure/http"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/http/handlers"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/http/middleware"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/persistence/postgres"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	hasher := security.NewPBKDF2Hasher(security.PBKDF2Params{
		Iterations: cfg.Hash.Iterations,
		KeyLength:  64,
	})
	codec := infraauth.NewTokenCodec(
		[]byte(cfg.JWT.AccessKey),
		[]byte(cfg.JWT.RefreshKey),
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
	)

	verifier := authuc.NewRefreshVerifier(codec, sessionRepo, cfg.JWT.RenewWindow)
	loginUC := authuc.NewLogin(userRepo, sessionRepo, hasher, codec, log)
	renewUC := authuc.NewRenew(verifier, userRepo, sessionRepo, codec)
	logoutUC := authuc.NewLogout(verifier, sessionRepo)
	logoutOthersUC := authuc.NewLogoutOthers(verifier, sessionRepo)
	changePasswordUC := authuc.NewChangePassword(verifier, userRepo, hasher)
	createUserUC := adminuc.NewCreateUser(userRepo, hasher)
	deleteUserUC := adminuc.NewDeleteUser(userRepo)
	resetPasswordUC := adminuc.NewResetPassword(userRepo, hasher)

	authHandler := handlers.NewAuthHandler(loginUC, renewUC, logoutUC, logoutOthersUC, changePasswordUC, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, log)
	adminHandler := handlers.NewAdminHandler(createUserUC, deleteUserUC, resetPasswordUC, log)
	aliveHandler := handlers.NewAliveHandler(pool)
	requireAuth := middleware.NewAuthValidator(codec).Handler
	secureMiddleware := middleware.SecureHeaders(cfg.Secure.IsDevelopment)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:  authHandler,
		AdminHandler: adminHandler,
		AliveHandler: aliveHandler,
		RequireAuth:  requireAuth,
		Log:          log,
		Secure:       secureMiddleware,
		Metrics:      cfg.Metrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
