package notify

import (
	"time"

	"github.com/LeonardoBeccarini/symbiont/pkg/dedup"
)

// Deduped drops a message identical to one delivered within the TTL,
// so a storage outage does not stack the same error toast on every update.
// When kinds are given only those kinds are deduplicated.
type Deduped struct {
	next  Notifier
	d     *dedup.Deduper
	kinds map[Kind]bool
}

func NewDeduped(next Notifier, ttl time.Duration, kinds ...Kind) *Deduped {
	d := &Deduped{next: next, d: dedup.New(ttl, 256)}
	if len(kinds) > 0 {
		d.kinds = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			d.kinds[k] = true
		}
	}
	return d
}

func (d *Deduped) Notify(kind Kind, message string) {
	if d.kinds == nil || d.kinds[kind] {
		if !d.d.ShouldProcess(string(kind) + "|" + message) {
			return
		}
	}
	d.next.Notify(kind, message)
}
