package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is the slice of the connection pool the liveness handler needs.
// *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AliveHandler serves the Kubernetes liveness and readiness probes. Liveness
// only proves the process answers; readiness additionally requires a round
// trip to the persistence layer.
type AliveHandler struct {
	db Pinger
}

func NewAliveHandler(db Pinger) *AliveHandler {
	return &AliveHandler{db: db}
}

func (h *AliveHandler) Alive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *AliveHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeErr(w, http.StatusServiceUnavailable, "database connection failed")
		return
	}
	w.WriteHeader(http.StatusOK)
}
