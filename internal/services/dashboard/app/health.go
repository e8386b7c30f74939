package app

import (
	"context"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

type readyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (d *Dashboard) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// HandleReady reports the best-effort stores. Liveness never depends on them,
// and a degraded cache still serves the dashboard.
func (d *Dashboard) HandleReady(w http.ResponseWriter, r *http.Request) {
	if d.cfg.Ready == nil {
		writeJSON(w, http.StatusOK, readyStatus{Status: "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := d.cfg.Ready(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, readyStatus{Status: "degraded", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, readyStatus{Status: "ok"})
}
