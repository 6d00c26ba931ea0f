// Package action provides the ack and annotate action primitives.
package action

import (
	"fmt"

	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// AckAction acknowledges an incoming event, reporting Filled or Rejected
// according to its `accept` parameter.
type AckAction struct {
	manifest primitive.Manifest
}

// NewAckAction constructs the primitive with its manifest.
func NewAckAction() *AckAction {
	return &AckAction{manifest: ackManifest()}
}

func ackManifest() primitive.Manifest {
	accept := value.NewBoolParam(true)
	return primitive.Manifest{
		ID:      "ack_action",
		Version: "0.1.0",
		Kind:    primitive.KindAction,
		Inputs: []primitive.InputSpec{
			{Name: "event", Type: value.TypeEvent, Required: true, Cardinality: primitive.CardinalitySingle},
		},
		Outputs: []primitive.OutputSpec{
			{Name: "outcome", Type: value.TypeEvent},
		},
		Parameters: []primitive.ParameterSpec{
			{Name: "accept", Type: value.ParamBool, Default: &accept},
		},
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceEvent,
			Retryable:     false,
		},
		State:       primitive.StateSpec{Allowed: false},
		SideEffects: true,
	}
}

// Manifest reports the primitive's structural contract.
func (a *AckAction) Manifest() primitive.Manifest {
	return a.manifest
}

// Execute reports Filled when accept is true (the default), Rejected
// otherwise.
func (a *AckAction) Execute(inputs map[string]value.Value, params map[string]value.Param) map[string]value.Value {
	requireEvent(inputs, "event")

	accept := true
	if p, ok := params["accept"]; ok && p.Type == value.ParamBool {
		accept = p.Bool
	}

	outcome := value.Rejected
	if accept {
		outcome = value.Filled
	}
	return map[string]value.Value{"outcome": value.NewActionEvent(outcome)}
}

// AnnotateAction attaches a note to an incoming event and reports
// Attempted.
type AnnotateAction struct {
	manifest primitive.Manifest
}

// NewAnnotateAction constructs the primitive with its manifest.
func NewAnnotateAction() *AnnotateAction {
	return &AnnotateAction{manifest: annotateManifest()}
}

func annotateManifest() primitive.Manifest {
	return primitive.Manifest{
		ID:      "annotate_action",
		Version: "0.1.0",
		Kind:    primitive.KindAction,
		Inputs: []primitive.InputSpec{
			{Name: "event", Type: value.TypeEvent, Required: true, Cardinality: primitive.CardinalitySingle},
		},
		Outputs: []primitive.OutputSpec{
			{Name: "outcome", Type: value.TypeEvent},
		},
		Parameters: []primitive.ParameterSpec{
			{Name: "note", Type: value.ParamString},
		},
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceEvent,
			Retryable:     false,
		},
		State:       primitive.StateSpec{Allowed: false},
		SideEffects: true,
	}
}

// Manifest reports the primitive's structural contract.
func (a *AnnotateAction) Manifest() primitive.Manifest {
	return a.manifest
}

// Execute consumes the note parameter and reports Attempted.
func (a *AnnotateAction) Execute(inputs map[string]value.Value, params map[string]value.Param) map[string]value.Value {
	requireEvent(inputs, "event")

	if p, ok := params["note"]; ok && p.Type == value.ParamString {
		_ = p.Str
	}
	return map[string]value.Value{"outcome": value.NewActionEvent(value.Attempted)}
}

func requireEvent(inputs map[string]value.Value, name string) value.Event {
	ev, ok := inputs[name].AsEvent()
	if !ok {
		panic(fmt.Sprintf("missing required event input %q", name))
	}
	return ev
}
