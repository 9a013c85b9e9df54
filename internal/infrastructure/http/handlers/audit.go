package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AuditLog logs auth events (username, IP, request id).
func AuditLog(log zerolog.Logger, r *http.Request, event, username string, success bool, errMsg string) {
	var ev *zerolog.Event
	if success {
		ev = log.Info()
	} else {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("username", username).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
