package messages

import (
	"time"

	"github.com/LeonardoBeccarini/symbiont/internal/model/entities"
)

// FarmSnapshot is the record mirrored into the best-effort cache.
type FarmSnapshot struct {
	ID        int                `json:"id"` // always SnapshotID, overwrites the previous record
	State     entities.FarmState `json:"state"`
	Timestamp time.Time          `json:"timestamp"`
}

// SnapshotID is the constant key of the cached record.
const SnapshotID = 1
