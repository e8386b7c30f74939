package app

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/clock"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/metrics"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
)

type Config struct {
	Store   *farm.Store
	Tray    *notify.Tray
	Theme   *theme.Preference
	Metrics *metrics.Metrics
	Clock   clock.Clock

	// Location is used for the "Local time" line. Defaults to UTC.
	Location *time.Location

	// Ready backs /readyz. A nil Ready always reports ready.
	Ready func(ctx context.Context) error

	Logger *zap.Logger
}

type Dashboard struct {
	cfg  Config
	page *template.Template
}

func NewDashboard(cfg Config) *Dashboard {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.NewPreference(false)
	}
	return &Dashboard{cfg: cfg, page: pageTemplate}
}

// Routes registers every endpoint of the dashboard.
func (d *Dashboard) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", d.HandleIndex)
	mux.HandleFunc("POST /evolve", d.HandleEvolveForm)
	mux.HandleFunc("POST /theme", d.HandleToggleTheme)

	mux.HandleFunc("GET /api/state", d.HandleState)
	mux.HandleFunc("POST /api/predict", d.HandlePredict)
	mux.HandleFunc("POST /api/evolve", d.HandleEvolve)
	mux.HandleFunc("GET /api/projection", d.HandleProjection)
	mux.HandleFunc("GET /api/toasts", d.HandleToasts)
	mux.HandleFunc("DELETE /api/toasts/{id}", d.HandleDismissToast)

	mux.HandleFunc("GET /healthz", d.HandleHealth)
	mux.HandleFunc("GET /readyz", d.HandleReady)
	if d.cfg.Metrics != nil {
		mux.Handle("GET /metrics", d.cfg.Metrics.Handler())
	}

	return d.withClientHints(d.withAccessLog(mux))
}

// withClientHints asks browsers for their color scheme and reports every hint
// to the theme, which follows system changes but keeps an explicit toggle.
func (d *Dashboard) withClientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", theme.ClientHintHeader)
		w.Header().Add("Vary", theme.ClientHintHeader)
		if dark, ok := theme.FromClientHint(r.Header.Get(theme.ClientHintHeader)); ok {
			d.cfg.Theme.Seed(dark)
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (d *Dashboard) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := d.cfg.Clock.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		d.cfg.Logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", d.cfg.Clock.Now().Sub(start)),
		)
	})
}
