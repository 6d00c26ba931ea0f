package primitive

import "fmt"

// ErrWrongKind is returned when a manifest declares a kind other than the
// registry's.
type ErrWrongKind struct {
	Expected PrimitiveKind
	Got      PrimitiveKind
}

func (e ErrWrongKind) Error() string {
	return fmt.Sprintf("manifest kind %q does not match registry kind %q", e.Got, e.Expected)
}

// ErrSideEffectsRequired is returned when an action manifest declares no side
// effects.
type ErrSideEffectsRequired struct {
	ID string
}

func (e ErrSideEffectsRequired) Error() string {
	return fmt.Sprintf("action %q must declare side effects", e.ID)
}

// ErrSideEffectsNotAllowed is returned when a source, compute, or trigger
// manifest declares side effects.
type ErrSideEffectsNotAllowed struct {
	ID string
}

func (e ErrSideEffectsNotAllowed) Error() string {
	return fmt.Sprintf("primitive %q must not declare side effects", e.ID)
}

// ErrNonDeterministicExecution is returned when a manifest does not declare
// deterministic execution.
type ErrNonDeterministicExecution struct {
	ID string
}

func (e ErrNonDeterministicExecution) Error() string {
	return fmt.Sprintf("primitive %q must declare deterministic execution", e.ID)
}

// ErrRetryNotAllowed is returned when an action manifest declares itself
// retryable.
type ErrRetryNotAllowed struct {
	ID string
}

func (e ErrRetryNotAllowed) Error() string {
	return fmt.Sprintf("action %q must not be retryable", e.ID)
}

// ErrStateNotAllowed is returned when a source or action manifest declares
// internal state.
type ErrStateNotAllowed struct {
	ID string
}

func (e ErrStateNotAllowed) Error() string {
	return fmt.Sprintf("primitive %q must not declare internal state", e.ID)
}

// ErrStatefulTriggerNotAllowed is returned when a trigger manifest declares
// internal state. Temporal memory lives in clusters, not trigger primitives.
type ErrStatefulTriggerNotAllowed struct {
	ID string
}

func (e ErrStatefulTriggerNotAllowed) Error() string {
	return fmt.Sprintf("trigger %q must be stateless", e.ID)
}

// ErrEventInputRequired is returned when an action manifest declares no input
// of type Event.
type ErrEventInputRequired struct {
	ID string
}

func (e ErrEventInputRequired) Error() string {
	return fmt.Sprintf("action %q must declare an event input", e.ID)
}

// ErrNoInputsDeclared is returned when a compute manifest declares no inputs.
type ErrNoInputsDeclared struct {
	ID string
}

func (e ErrNoInputsDeclared) Error() string {
	return fmt.Sprintf("compute %q must declare at least one input", e.ID)
}

// ErrInputsNotAllowed is returned when a source manifest declares inputs.
type ErrInputsNotAllowed struct {
	ID string
}

func (e ErrInputsNotAllowed) Error() string {
	return fmt.Sprintf("source %q must not declare inputs", e.ID)
}

// ErrInvalidCadence is returned when a source manifest declares a cadence
// other than continuous.
type ErrInvalidCadence struct {
	ID  string
	Got Cadence
}

func (e ErrInvalidCadence) Error() string {
	return fmt.Sprintf("source %q must declare continuous cadence, got %q", e.ID, e.Got)
}

// ErrInvalidOutputType is returned when a trigger or action output does not
// match the required single event shape.
type ErrInvalidOutputType struct {
	ID     string
	Output string
	Reason string
}

func (e ErrInvalidOutputType) Error() string {
	return fmt.Sprintf("primitive %q output %q invalid: %s", e.ID, e.Output, e.Reason)
}

// ErrOutputsRequired is returned when a source manifest declares no outputs.
type ErrOutputsRequired struct {
	ID string
}

func (e ErrOutputsRequired) Error() string {
	return fmt.Sprintf("source %q must declare at least one output", e.ID)
}

// ErrDuplicateID is returned when a primitive id is already registered.
type ErrDuplicateID struct {
	ID string
}

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("primitive %q already registered", e.ID)
}
