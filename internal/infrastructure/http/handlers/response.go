package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

// writeErr sends JSON { "error": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// mapError translates the domain error taxonomy to an HTTP response. Anything
// outside the taxonomy is an internal failure: logged in full, reported
// generically.
func mapError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrAuthenticationFailed):
		writeErr(w, http.StatusUnauthorized, domerrors.ErrAuthenticationFailed.Error())
	case errors.Is(err, domerrors.ErrDuplicateUsername):
		writeErr(w, http.StatusBadRequest, domerrors.ErrDuplicateUsername.Error())
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, domerrors.ErrUserNotFound.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
