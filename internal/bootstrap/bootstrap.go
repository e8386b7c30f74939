// Package bootstrap wires the farm store to its collaborators for both hosts.
package bootstrap

import (
	"context"
	"errors"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/cache"
	"github.com/LeonardoBeccarini/symbiont/internal/clock"
	"github.com/LeonardoBeccarini/symbiont/internal/config"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/metrics"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
	"github.com/LeonardoBeccarini/symbiont/pkg/rabbitmq"
)

// Runtime is everything a host needs.
type Runtime struct {
	Store   *farm.Store
	Tray    *notify.Tray
	Theme   *theme.Preference
	Metrics *metrics.Metrics
	Mirror  *cache.Mirror
	Local   *cache.SQLite  // nil when the local cache is absent
	Influx  *cache.Influx  // nil unless configured
	Guards  []*cache.Guarded
	Clock   clock.Clock
	Config  config.Config
	Log     *zap.Logger

	mqttClient mqtt.Client
}

// Options tune Build for a given host.
type Options struct {
	Clock     clock.Clock
	DarkMode  bool
	SkipMQTT  bool
	Notifiers []notify.Notifier
}

// Build never fails because of the cache or the broker: both are best-effort
// and their absence is reported as a notification.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger, opts Options) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	rt := &Runtime{
		Tray:    notify.NewTray(clk, cfg.ToastDuration),
		Theme:   theme.NewPreference(opts.DarkMode),
		Metrics: metrics.New(),
		Clock:   clk,
		Config:  cfg,
		Log:     log,
	}

	sinks := notify.Multi{rt.Tray, notify.NewLogger(log.Named("notify")), countingNotifier{rt.Metrics}}
	sinks = append(sinks, opts.Notifiers...)
	if !opts.SkipMQTT {
		if n := rt.connectMQTT(ctx); n != nil {
			sinks = append(sinks, n)
		}
	}
	notifier := notify.NewDeduped(sinks, cfg.ToastDuration, notify.KindError)

	backends := rt.openBackends(ctx, notifier)
	rt.Mirror = cache.NewMirror(backends,
		cache.WithTimeout(cfg.WriteTimeout),
		cache.WithMetrics(rt.Metrics),
		cache.WithLogger(log.Named("cache")),
		cache.WithClock(clk.Now),
		cache.OnFailure(func(string, error) {
			notifier.Notify(notify.KindError, cache.SaveFailedMessage)
		}),
	)

	initial := model.InitialState(cfg.InitialYield)
	if cfg.RestoreCached && rt.Local != nil {
		if snap, ok, err := rt.Local.Load(ctx); err != nil {
			log.Warn("bootstrap: cached state not restored", zap.Error(err))
		} else if ok {
			initial = farm.Bounded(snap.State)
			log.Info("bootstrap: restored cached state", zap.Time("saved_at", snap.Timestamp))
		}
	}

	rt.Store = farm.NewStore(initial,
		farm.WithPersister(rt.Mirror),
		farm.WithNotifier(notifier),
		farm.WithMetrics(rt.Metrics),
		farm.WithLogger(log.Named("farm")),
	)
	return rt
}

func (rt *Runtime) openBackends(ctx context.Context, notifier notify.Notifier) []cache.Persister {
	cfg := rt.Config
	var backends []cache.Persister

	onBreaker := func(name string, from, to gobreaker.State) {
		rt.Log.Warn("cache: breaker state changed",
			zap.String("backend", name), zap.String("from", from.String()), zap.String("to", to.String()))
	}

	if path := cfg.CachePath(); path != "" {
		db, err := cache.OpenSQLite(ctx, path)
		if err != nil {
			rt.Log.Warn("cache: local store unavailable", zap.String("path", path), zap.Error(err))
			notifier.Notify(notify.KindError, cache.OpenFailedMessage)
		} else {
			rt.Local = db
			g := cache.NewGuarded(db, cfg.BreakerSettings(), onBreaker)
			rt.Guards = append(rt.Guards, g)
			backends = append(backends, g)
			rt.Log.Info("cache: local store ready", zap.String("path", db.Path()))
		}
	}

	influx, err := cache.NewInflux(cfg.InfluxConfig(), func(err error) {
		rt.Metrics.CacheWrite("influx", err)
		rt.Log.Warn("cache: influx write failed", zap.Error(err))
		notifier.Notify(notify.KindError, cache.SaveFailedMessage)
	})
	switch {
	case errors.Is(err, cache.ErrUnavailable):
		rt.Log.Debug("cache: influx mirror disabled")
	case err != nil:
		rt.Log.Warn("cache: influx mirror not started", zap.Error(err))
	default:
		rt.Influx = influx
		backends = append(backends, influx)
	}
	return backends
}

func (rt *Runtime) connectMQTT(ctx context.Context) notify.Notifier {
	rc := rt.Config.RabbitMQConfig()
	if !rc.Enabled() {
		return nil
	}
	client, err := rabbitmq.NewRabbitMQConn(ctx, rc, rt.Log.Named("mqtt"))
	if err != nil {
		rt.Log.Warn("notify: mqtt sink disabled", zap.Error(err))
		return nil
	}
	rt.mqttClient = client
	return notify.NewMQTT(func(topic string) rabbitmq.IPublisher {
		return rabbitmq.NewPublisher(client, topic, rc.QoS)
	}, rt.Config.MQTT.TopicTemplate, rt.Log.Named("mqtt"))
}

// Ready reports whether the best-effort stores currently accept writes.
// A dashboard without any store is still ready.
func (rt *Runtime) Ready(ctx context.Context) error {
	for _, g := range rt.Guards {
		if g.State() == gobreaker.StateOpen {
			return errors.New(g.Name() + " breaker open")
		}
	}
	if rt.Local != nil {
		if err := rt.Local.Ping(ctx); err != nil {
			return err
		}
	}
	if rt.Influx != nil && rt.Influx.LastErrorAge() < 30*time.Second {
		return errors.New("influx write failed recently")
	}
	return nil
}

// Close waits for in-flight writes, then releases stores and the broker.
func (rt *Runtime) Close() {
	rt.Mirror.Wait()
	if rt.Influx != nil {
		rt.Influx.Close()
	}
	if rt.Local != nil {
		if err := rt.Local.Close(); err != nil {
			rt.Log.Warn("cache: close failed", zap.Error(err))
		}
	}
	rabbitmq.CloseRabbitMQConn(rt.mqttClient)
}

type countingNotifier struct{ m *metrics.Metrics }

func (c countingNotifier) Notify(kind notify.Kind, _ string) { c.m.Notification(string(kind)) }
