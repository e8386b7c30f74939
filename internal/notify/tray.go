package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LeonardoBeccarini/symbiont/internal/clock"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Toast is a single notification as shown by a host.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Tray keeps the toasts that hosts still have to display.
type Tray struct {
	mu       sync.Mutex
	clk      clock.Clock
	duration time.Duration
	toasts   []Toast
	max      int
}

// NewTray creates a tray whose toasts expire after d (DefaultDuration if d <= 0).
func NewTray(clk clock.Clock, d time.Duration) *Tray {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if d <= 0 {
		d = DefaultDuration
	}
	return &Tray{clk: clk, duration: d, max: 20}
}

// Notify queues a toast.
func (t *Tray) Notify(kind Kind, message string) {
	t.Push(kind, message)
}

// Push queues a toast and returns it.
func (t *Tray) Push(kind Kind, message string) Toast {
	now := t.clk.Now()
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(t.duration),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked(now)
	t.toasts = append(t.toasts, toast)
	if len(t.toasts) > t.max {
		t.toasts = t.toasts[len(t.toasts)-t.max:]
	}
	return toast
}

// Active returns the toasts that have not expired, newest first.
func (t *Tray) Active() []Toast {
	now := t.clk.Now()

	t.mu.Lock()
	t.pruneLocked(now)
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	t.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Dismiss removes a toast before it expires.
func (t *Tray) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.toasts {
		if t.toasts[i].ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tray) pruneLocked(now time.Time) {
	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if now.Before(toast.ExpiresAt) {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept
}
