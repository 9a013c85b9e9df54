package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hyecheol123/generic-auth-api/internal/application/admin"
)

// AdminHandler serves the account-management endpoints. The router guards
// every route with the admin access-token middleware.
type AdminHandler struct {
	createUser    *admin.CreateUser
	deleteUser    *admin.DeleteUser
	resetPassword *admin.ResetPassword
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAdminHandler(createUser *admin.CreateUser, deleteUser *admin.DeleteUser, resetPassword *admin.ResetPassword, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		createUser:    createUser,
		deleteUser:    deleteUser,
		resetPassword: resetPassword,
		validate:      validator.New(),
		log:           log,
	}
}

// CreateUser handles POST /admin/user. membersince must be RFC 3339; it is
// truncated to whole seconds before hashing and storage. admin defaults to
// false when absent.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username    string `json:"username" validate:"required"`
		Password    string `json:"password" validate:"required"`
		MemberSince string `json:"membersince" validate:"required"`
		Admin       bool   `json:"admin"`
	}
	if err := decodeStrict(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	memberSince, err := time.Parse(time.RFC3339, body.MemberSince)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid membersince timestamp")
		return
	}

	err = h.createUser.Execute(r.Context(), admin.CreateUserInput{
		Username:    body.Username,
		Password:    body.Password,
		MemberSince: memberSince,
		Admin:       body.Admin,
	})
	if err != nil {
		AuditLog(h.log, r, "admin.create_user", body.Username, false, err.Error())
		mapError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "admin.create_user", body.Username, true, "")
	writeJSON(w, http.StatusCreated, map[string]string{"message": "new user created"})
}

// DeleteUser handles DELETE /admin/user/{username}, removing the account and
// all of its sessions.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.deleteUser.Execute(r.Context(), username); err != nil {
		AuditLog(h.log, r, "admin.delete_user", username, false, err.Error())
		mapError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "admin.delete_user", username, true, "")
	w.WriteHeader(http.StatusOK)
}

// ResetPassword handles PUT /admin/user/{username}/password. All of the
// target's sessions are revoked.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var body struct {
		NewPassword string `json:"newPassword" validate:"required"`
	}
	if err := decodeStrict(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	err := h.resetPassword.Execute(r.Context(), admin.ResetPasswordInput{
		Username:    username,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		AuditLog(h.log, r, "admin.reset_password", username, false, err.Error())
		mapError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "admin.reset_password", username, true, "")
	w.WriteHeader(http.StatusOK)
}
