package farm

import (
	"sync"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/metrics"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
)

// EvolvedMessage is the toast raised after a successful co-evolution.
const EvolvedMessage = "Neural co-evolution applied! Yield updated."

// Persister mirrors a snapshot without blocking the caller.
// Implementations report their own failures.
type Persister interface {
	Fire(s model.FarmState)
}

// Store owns the current farm state. Every mutation goes through Update.
type Store struct {
	mu sync.RWMutex
	st model.FarmState

	subMu   sync.Mutex
	subs    map[int]func(model.FarmState)
	nextSub int

	persist  Persister
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
}

type Option func(*Store)

func WithPersister(p Persister) Option { return func(s *Store) { s.persist = p } }

func WithNotifier(n notify.Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Store) { s.metrics = m } }

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// NewStore creates a store holding initial. The initial state is not persisted.
func NewStore(initial model.FarmState, opts ...Option) *Store {
	s := &Store{
		st:       initial.Clone(),
		subs:     make(map[int]func(model.FarmState)),
		notifier: notify.Nop,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.metrics.SetState(s.st)
	return s
}

// State returns a copy of the current state.
func (s *Store) State() model.FarmState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Clone()
}

// Predict computes what Evolve would produce without changing anything.
func (s *Store) Predict(adjustment float64) model.FarmState {
	s.metrics.ObservePrediction(adjustment)
	return Predict(s.State(), adjustment)
}

// Update replaces the state wholesale, then notifies subscribers and fires
// the persister. It never waits for the persister.
func (s *Store) Update(next model.FarmState) {
	s.replace(func(model.FarmState) model.FarmState { return next })
}

// Evolve applies a prediction for adjustment and raises the success toast.
func (s *Store) Evolve(adjustment float64) model.FarmState {
	s.metrics.ObservePrediction(adjustment)
	next := s.replace(func(cur model.FarmState) model.FarmState { return Predict(cur, adjustment) })
	s.notifier.Notify(notify.KindSuccess, EvolvedMessage)
	return next
}

// replace is the single mutation path. fn sees the current state under the lock.
func (s *Store) replace(fn func(model.FarmState) model.FarmState) model.FarmState {
	s.mu.Lock()
	next := fn(s.st).Clone()
	s.st = next
	s.mu.Unlock()

	s.metrics.ObserveState(next)
	s.log.Debug("farm state replaced",
		zap.Float64("yield", next.Yield),
		zap.Float64("risk", next.Risk),
		zap.Float64("water", next.Water))

	for _, sub := range s.subscribers() {
		sub(next.Clone())
	}
	if s.persist != nil {
		s.persist.Fire(next.Clone())
	}
	return next.Clone()
}

// Subscribe registers fn to receive every new state. The returned func removes it.
func (s *Store) Subscribe(fn func(model.FarmState)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) subscribers() []func(model.FarmState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]func(model.FarmState), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}
