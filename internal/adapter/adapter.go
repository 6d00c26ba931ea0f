// Package adapter defines the boundary between the graph runtime and the
// supervisor: event identities, the logical clock's time type, external
// events, run terminations, and the runtime invoker contract.
package adapter

import (
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/kestrel/internal/engine"
)

// GraphID names one deployed graph.
type GraphID string

// EventID names one external event.
type EventID string

// NewEventID mints a random event id.
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

// EventTime is an opaque monotonic logical duration used both as absolute
// time and as delay. It never reads wall time.
type EventTime time.Duration

// Add offsets the time by a delay.
func (t EventTime) Add(d time.Duration) EventTime {
	return t + EventTime(d)
}

// Sub returns the elapsed duration since an earlier time, saturating at
// zero.
func (t EventTime) Sub(earlier EventTime) time.Duration {
	if earlier > t {
		return 0
	}
	return time.Duration(t - earlier)
}

// ExternalEventKind classifies the stimulus carried by an external event.
type ExternalEventKind string

const (
	KindTick          ExternalEventKind = "tick"
	KindDataAvailable ExternalEventKind = "data_available"
	KindCommand       ExternalEventKind = "command"
)

// ExternalEvent is one unit of external stimulus handed to the supervisor.
type ExternalEvent struct {
	EventID EventID
	Kind    ExternalEventKind
	At      EventTime
	Payload []byte
	Context *engine.ExecutionContext
}

// Mechanical builds an event at logical time zero with an empty execution
// context.
func Mechanical(id EventID, kind ExternalEventKind) ExternalEvent {
	return MechanicalAt(id, kind, 0)
}

// MechanicalAt builds an event at the given logical time with an empty
// execution context.
func MechanicalAt(id EventID, kind ExternalEventKind, at EventTime) ExternalEvent {
	return ExternalEvent{
		EventID: id,
		Kind:    kind,
		At:      at,
		Context: engine.NewExecutionContext(),
	}
}

// WithPayload builds an event carrying opaque payload bytes.
func WithPayload(id EventID, kind ExternalEventKind, at EventTime, payload []byte) ExternalEvent {
	ev := MechanicalAt(id, kind, at)
	ev.Payload = payload
	return ev
}
