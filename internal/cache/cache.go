// Package cache mirrors farm snapshots into best-effort stores.
//
// Nothing here is on the update path: writes run on their own goroutines,
// failures reach a callback, and no write is ever retried or rolled back.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/metrics"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

// ErrUnavailable marks a store that is not configured or could not be opened.
var ErrUnavailable = errors.New("cache: store unavailable")

const (
	// SaveFailedMessage is the toast shown when a write fails.
	SaveFailedMessage = "Storage error: Could not save farm data."
	// OpenFailedMessage is the toast shown when the local store cannot be opened.
	OpenFailedMessage = "Storage error: Could not save farm data. Check device space."

	DefaultWriteTimeout = 2 * time.Second
)

// Persister stores a snapshot under its constant id, overwriting the previous one.
type Persister interface {
	Name() string
	Save(ctx context.Context, snap model.FarmSnapshot) error
}

// Mirror fans each state out to every configured persister.
type Mirror struct {
	backends  []Persister
	timeout   time.Duration
	onFailure func(backend string, err error)
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time

	wg sync.WaitGroup
}

type MirrorOption func(*Mirror)

// OnFailure sets the callback invoked once per failed write.
func OnFailure(fn func(backend string, err error)) MirrorOption {
	return func(m *Mirror) { m.onFailure = fn }
}

func WithTimeout(d time.Duration) MirrorOption {
	return func(m *Mirror) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithMetrics(mt *metrics.Metrics) MirrorOption { return func(m *Mirror) { m.metrics = mt } }

func WithLogger(l *zap.Logger) MirrorOption { return func(m *Mirror) { m.log = l } }

func WithClock(now func() time.Time) MirrorOption { return func(m *Mirror) { m.now = now } }

// NewMirror builds a mirror over the non-nil backends. With none it does nothing,
// which is how an absent store is tolerated.
func NewMirror(backends []Persister, opts ...MirrorOption) *Mirror {
	m := &Mirror{
		timeout: DefaultWriteTimeout,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, b := range backends {
		if b != nil {
			m.backends = append(m.backends, b)
		}
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Available reports whether at least one backend is configured.
func (m *Mirror) Available() bool {
	return m != nil && len(m.backends) > 0
}

// Fire starts one write per backend and returns immediately.
func (m *Mirror) Fire(s model.FarmState) {
	if !m.Available() {
		return
	}
	snap := model.FarmSnapshot{ID: model.SnapshotID, State: s.Clone(), Timestamp: m.now().UTC()}
	for _, b := range m.backends {
		m.wg.Add(1)
		go m.write(b, snap)
	}
}

// Wait blocks until in-flight writes finish. Used at shutdown and in tests.
func (m *Mirror) Wait() {
	if m == nil {
		return
	}
	m.wg.Wait()
}

func (m *Mirror) write(b Persister, snap model.FarmSnapshot) {
	defer m.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	err := safeSave(ctx, b, snap)
	m.metrics.CacheWrite(b.Name(), err)
	if err == nil {
		m.log.Debug("cache: snapshot saved", zap.String("backend", b.Name()))
		return
	}
	m.log.Warn("cache: snapshot not saved", zap.String("backend", b.Name()), zap.Error(err))
	if m.onFailure != nil {
		m.onFailure(b.Name(), err)
	}
}

// safeSave turns a panicking driver into an ordinary error.
func safeSave(ctx context.Context, b Persister, snap model.FarmSnapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic during save: %v", ErrUnavailable, r)
		}
	}()
	return b.Save(ctx, snap)
}
