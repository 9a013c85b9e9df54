package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hyecheol123/generic-auth-api/internal/application/auth"
	"github.com/hyecheol123/generic-auth-api/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	login          *auth.Login
	renew          *auth.Renew
	logout         *auth.Logout
	logoutOthers   *auth.LogoutOthers
	changePassword *auth.ChangePassword
	accessTTL      time.Duration
	refreshTTL     time.Duration
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(login *auth.Login, renew *auth.Renew, logout *auth.Logout, logoutOthers *auth.LogoutOthers, changePassword *auth.ChangePassword, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:          login,
		renew:          renew,
		logout:         logout,
		logoutOthers:   logoutOthers,
		changePassword: changePassword,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
		validate:       validator.New(),
		log:            log,
	}
}

// Login handles POST /login. On success both token cookies are set with
// max-ages matching their validity windows.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeStrict(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "login", body.Username, false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		mapError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "login", body.Username, true, "")
	middleware.RecordAuthAttempt("login", true)

	setTokenCookie(w, AccessTokenCookie, result.AccessToken, h.accessTTL)
	setTokenCookie(w, RefreshTokenCookie, result.RefreshToken, h.refreshTTL)
	w.WriteHeader(http.StatusOK)
}

// Logout handles DELETE /logout. Both cookies are cleared on success; a
// token whose session is already gone gets 401, not a silent no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if err := h.logout.Execute(r.Context(), token); err != nil {
		middleware.RecordAuthAttempt("logout", false)
		mapError(w, h.log, err)
		return
	}
	middleware.RecordAuthAttempt("logout", true)
	clearTokenCookie(w, AccessTokenCookie)
	clearTokenCookie(w, RefreshTokenCookie)
	w.WriteHeader(http.StatusOK)
}

// LogoutOthers handles DELETE /logout/other-sessions, ending every session
// of the caller except the presented one.
func (h *AuthHandler) LogoutOthers(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if err := h.logoutOthers.Execute(r.Context(), token); err != nil {
		mapError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Renew handles GET /renew. A fresh access cookie is always set; the refresh
// cookie is replaced only when the token was close enough to expiry to be
// rotated.
func (h *AuthHandler) Renew(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	result, err := h.renew.Execute(r.Context(), auth.RenewInput{RefreshToken: token})
	if err != nil {
		middleware.RecordAuthAttempt("renew", false)
		mapError(w, h.log, err)
		return
	}
	middleware.RecordAuthAttempt("renew", true)

	if result.Rotated {
		setTokenCookie(w, RefreshTokenCookie, result.RefreshToken, h.refreshTTL)
	}
	setTokenCookie(w, AccessTokenCookie, result.AccessToken, h.accessTTL)
	w.WriteHeader(http.StatusOK)
}

// ChangePassword handles PUT /password. The refresh token is checked before
// the body is read: authentication failures outrank a malformed body. The
// body must contain exactly currentPassword and newPassword.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	username, err := h.changePassword.Authorize(r.Context(), token)
	if err != nil {
		AuditLog(h.log, r, "change_password", "", false, err.Error())
		mapError(w, h.log, err)
		return
	}

	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required"`
	}
	if err := decodeStrict(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	err = h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		RefreshToken:    token,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		AuditLog(h.log, r, "change_password", username, false, err.Error())
		mapError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "change_password", username, true, "")
	w.WriteHeader(http.StatusOK)
}
