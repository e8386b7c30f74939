// Package metrics exposes dashboard counters to prometheus.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

type Metrics struct {
	reg *prometheus.Registry

	predictions   prometheus.Counter
	updates       prometheus.Counter
	adjustment    prometheus.Histogram
	yield         prometheus.Gauge
	risk          prometheus.Gauge
	water         prometheus.Gauge
	cacheWrites   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New registers the dashboard collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		predictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "symbiont", Name: "predictions_total",
			Help: "Predictions computed against the current farm state.",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "symbiont", Name: "state_updates_total",
			Help: "Farm state replacements.",
		}),
		adjustment: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "symbiont", Name: "adjustment_tons",
			Help:    "Adjustments applied by users.",
			Buckets: prometheus.LinearBuckets(-10, 2.5, 9),
		}),
		yield: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "symbiont", Name: "yield_tons_per_hectare", Help: "Current yield.",
		}),
		risk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "symbiont", Name: "blight_risk_percent", Help: "Current blight risk.",
		}),
		water: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "symbiont", Name: "water_saved_liters", Help: "Accumulated mock water savings.",
		}),
		cacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symbiont", Name: "cache_writes_total",
			Help: "Best-effort cache writes by backend and result.",
		}, []string{"backend", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symbiont", Name: "notifications_total",
			Help: "Toasts raised by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.predictions, m.updates, m.adjustment, m.yield, m.risk, m.water,
		m.cacheWrites, m.notifications,
	)
	return m
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) ObservePrediction(adjustment float64) {
	if m == nil {
		return
	}
	m.predictions.Inc()
	m.adjustment.Observe(adjustment)
}

// ObserveState counts one state replacement and updates the gauges.
func (m *Metrics) ObserveState(s model.FarmState) {
	if m == nil {
		return
	}
	m.updates.Inc()
	m.SetState(s)
}

// SetState updates the gauges without counting a replacement.
func (m *Metrics) SetState(s model.FarmState) {
	if m == nil {
		return
	}
	m.yield.Set(s.Yield)
	m.risk.Set(s.Risk)
	m.water.Set(s.Water)
}

// CacheWrite counts one write attempt; err == nil means success.
func (m *Metrics) CacheWrite(backend string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.cacheWrites.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) Notification(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}
