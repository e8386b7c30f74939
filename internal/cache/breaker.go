package cache

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

// BreakerSettings configures Guarded.
type BreakerSettings struct {
	Failures int           // consecutive failures that open the breaker
	OpenFor  time.Duration // how long writes fail fast before a trial write
}

// Guarded stops hammering a failing store: after Failures consecutive errors
// writes fail fast with gobreaker.ErrOpenState until OpenFor has elapsed.
type Guarded struct {
	next Persister
	cb   *gobreaker.CircuitBreaker
}

func NewGuarded(next Persister, s BreakerSettings, onStateChange func(name string, from, to gobreaker.State)) *Guarded {
	fails := s.Failures
	if fails < 1 {
		fails = 3
	}
	openFor := s.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	return &Guarded{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    next.Name(),
			Timeout: openFor,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= uint32(fails)
			},
			OnStateChange: onStateChange,
		}),
	}
}

func (g *Guarded) Name() string { return g.next.Name() }

func (g *Guarded) Save(ctx context.Context, snap model.FarmSnapshot) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, g.next.Save(ctx, snap)
	})
	return err
}

// State exposes the breaker state for health reporting.
func (g *Guarded) State() gobreaker.State {
	return g.cb.State()
}
