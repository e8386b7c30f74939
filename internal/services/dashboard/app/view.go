package app

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/display"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").
	Funcs(template.FuncMap{"number": projection.FormatNumber}).
	ParseFS(templateFS, "templates/dashboard.html"))

// pageData is everything dashboard.html renders.
type pageData struct {
	State   model.FarmState
	Display display.Values
	Chart   projection.Chart
	Toasts  []notify.Toast
}

func (d *Dashboard) pageData() pageData {
	s := d.cfg.Store.State()
	dark := d.cfg.Theme.Dark()
	data := pageData{
		State:   s,
		Display: display.New(s, d.cfg.Clock.Now(), d.cfg.Location, dark),
		Chart:   projection.NewChart(s.Yield),
	}
	if d.cfg.Tray != nil {
		data.Toasts = d.cfg.Tray.Active()
	}
	return data
}

// render buffers the page so a template error never leaves a half-written body.
func (d *Dashboard) render(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := d.page.Execute(&buf, d.pageData()); err != nil {
		d.cfg.Logger.Error("dashboard: render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
