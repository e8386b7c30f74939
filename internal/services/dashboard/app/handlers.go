package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/display"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
)

// maxBody bounds request bodies; an adjustment never needs more.
const maxBody = 4 << 10

func (d *Dashboard) HandleIndex(w http.ResponseWriter, r *http.Request) {
	d.render(w)
}

// HandleEvolveForm applies the form adjustment and redirects back to the page.
// A zero adjustment leaves the state untouched, like the disabled button.
func (d *Dashboard) HandleEvolveForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		d.cfg.Logger.Debug("dashboard: bad form", zap.Error(err))
	}
	if adj := farm.NormalizeAdjustment(r.PostFormValue("adjustment")); adj != 0 {
		d.cfg.Store.Evolve(adj)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	dark := d.cfg.Theme.Toggle()
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, ThemeResponse{Dark: dark, Icon: theme.ToggleIcon(dark)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.stateResponse())
}

// HandlePredict answers what Evolve would produce without applying it.
func (d *Dashboard) HandlePredict(w http.ResponseWriter, r *http.Request) {
	req, ok := d.decodeAdjustment(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PredictResponse{
		Adjustment: req.Adjustment,
		Current:    d.cfg.Store.State(),
		Predicted:  d.cfg.Store.Predict(req.Adjustment),
	})
}

func (d *Dashboard) HandleEvolve(w http.ResponseWriter, r *http.Request) {
	req, ok := d.decodeAdjustment(w, r)
	if !ok {
		return
	}
	d.cfg.Store.Evolve(req.Adjustment)
	writeJSON(w, http.StatusOK, d.stateResponse())
}

// HandleProjection renders the chart for ?yield=, or for the current yield.
func (d *Dashboard) HandleProjection(w http.ResponseWriter, r *http.Request) {
	y := d.cfg.Store.State().Yield
	if raw := r.URL.Query().Get("yield"); raw != "" {
		y = farm.ParseNumber(raw)
	}
	writeJSON(w, http.StatusOK, projection.NewChart(y))
}

func (d *Dashboard) HandleToasts(w http.ResponseWriter, r *http.Request) {
	resp := ToastsResponse{Toasts: []notify.Toast{}}
	if d.cfg.Tray != nil {
		resp.Toasts = append(resp.Toasts, d.cfg.Tray.Active()...)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dashboard) HandleDismissToast(w http.ResponseWriter, r *http.Request) {
	if d.cfg.Tray == nil || !d.cfg.Tray.Dismiss(r.PathValue("id")) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "toast not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (d *Dashboard) stateResponse() StateResponse {
	s := d.cfg.Store.State()
	return StateResponse{
		FarmState: s,
		Display:   display.New(s, d.cfg.Clock.Now(), d.cfg.Location, d.cfg.Theme.Dark()),
	}
}

// decodeAdjustment tolerates an empty body (adjustment 0); only malformed
// JSON is rejected.
func (d *Dashboard) decodeAdjustment(w http.ResponseWriter, r *http.Request) (AdjustmentRequest, bool) {
	var req AdjustmentRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req)
	if err == nil || errors.Is(err, io.EOF) {
		return req, true
	}
	d.cfg.Logger.Debug("dashboard: bad adjustment body", zap.Error(err))
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	return AdjustmentRequest{}, false
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
