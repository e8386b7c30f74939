// Package notify delivers transient user-facing messages (toasts).
// Delivery is fire-and-forget: a Notifier never reports errors to its caller.
package notify

// Kind tells hosts how to style a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier receives a message for the user.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Func adapts a plain function to Notifier.
type Func func(kind Kind, message string)

func (f Func) Notify(kind Kind, message string) { f(kind, message) }

// Nop drops every message.
var Nop Notifier = Func(func(Kind, string) {})

// Multi fans a message out to every non-nil notifier in order.
type Multi []Notifier

func (m Multi) Notify(kind Kind, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(kind, message)
		}
	}
}
