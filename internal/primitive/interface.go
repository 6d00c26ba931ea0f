package primitive

import "github.com/kestrelworks/kestrel/internal/value"

// Source produces values from parameters alone. Sources have no inputs and
// no state; the same parameters always yield the same outputs.
type Source interface {
	Manifest() Manifest
	Produce(params map[string]value.Param) map[string]value.Value
}

// Compute maps input values to output values. State is reserved for rolling
// windows; the runtime currently passes nil.
type Compute interface {
	Manifest() Manifest
	Compute(inputs map[string]value.Value, params map[string]value.Param, state *ComputeState) map[string]value.Value
}

// Trigger evaluates inputs and emits exactly one event output. The state
// slot is owned by the caller and threaded through the execution context.
type Trigger interface {
	Manifest() Manifest
	Evaluate(inputs map[string]value.Value, params map[string]value.Param, state *TriggerState) map[string]value.Value
}

// Action performs the side-effecting edge of a graph. Actions consume an
// event and report exactly one `outcome` event.
type Action interface {
	Manifest() Manifest
	Execute(inputs map[string]value.Value, params map[string]value.Param) map[string]value.Value
}

// TriggerState is a per-trigger-node mutable slot owned by the caller across
// execution passes.
type TriggerState struct {
	Data map[string]value.Value
}

// NewTriggerState returns an empty state slot.
func NewTriggerState() *TriggerState {
	return &TriggerState{Data: make(map[string]value.Value)}
}

// Clone deep-copies the state slot.
func (s *TriggerState) Clone() *TriggerState {
	if s == nil {
		return nil
	}
	cloned := NewTriggerState()
	for k, v := range s.Data {
		cloned.Data[k] = v
	}
	return cloned
}

// ComputeState is the rolling-window slot for stateful computes.
type ComputeState struct {
	Data map[string]value.Value
}
