package messages

import "time"

// NotificationEvent is published on symbiont/notify/{kind} whenever the dashboard raises a toast.
type NotificationEvent struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "success" | "error"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
