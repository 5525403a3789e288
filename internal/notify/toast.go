package notify

import (
	"fmt"
	"time"
)

// Severity is the category of a toast. It selects the toast colour.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Normalize maps empty or unknown severities onto SeverityInfo.
func (s Severity) Normalize() Severity {
	switch s {
	case SeveritySuccess, SeverityError:
		return s
	default:
		return SeverityInfo
	}
}

const (
	// DisplayDuration is how long a toast stays fully visible.
	DisplayDuration = 3000 * time.Millisecond

	// FadeDuration is the length of the fade-out that follows the display interval.
	FadeDuration = 500 * time.Millisecond
)

// State is a toast's position in its lifecycle.
type State int

const (
	StateVisible State = iota
	StateFading
	StateRemoved
)

// String returns the lowercase state name
func (s State) String() string {
	switch s {
	case StateVisible:
		return "visible"
	case StateFading:
		return "fading"
	case StateRemoved:
		return "removed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state by name so relay clients see "fading" rather than 1.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "visible":
		*s = StateVisible
	case "fading":
		*s = StateFading
	case "removed":
		*s = StateRemoved
	default:
		return fmt.Errorf("unknown toast state %q", text)
	}
	return nil
}

// Toast is a single transient notification.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier shows a message to the user. Implementations must not block the
// caller for longer than it takes to hand the message off.
type Notifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(message string, severity Severity)

// Notify calls f(message, severity).
func (f NotifierFunc) Notify(message string, severity Severity) {
	f(message, severity)
}

// Nop discards every notification.
var Nop Notifier = NotifierFunc(func(string, Severity) {})

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify forwards to every non-nil notifier.
func (m Multi) Notify(message string, severity Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, severity)
		}
	}
}
