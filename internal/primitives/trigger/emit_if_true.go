// Package trigger provides the emit_if_true trigger primitive.
package trigger

import (
	"fmt"

	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// EmitIfTrue emits an event when its boolean input is true. The primitive
// is stateless; temporal memory belongs to clusters.
type EmitIfTrue struct {
	manifest primitive.Manifest
}

// NewEmitIfTrue constructs the primitive with its manifest.
func NewEmitIfTrue() *EmitIfTrue {
	return &EmitIfTrue{manifest: emitIfTrueManifest()}
}

func emitIfTrueManifest() primitive.Manifest {
	return primitive.Manifest{
		ID:      "emit_if_true",
		Version: "0.1.0",
		Kind:    primitive.KindTrigger,
		Inputs: []primitive.InputSpec{
			{Name: "input", Type: value.TypeBool, Required: true, Cardinality: primitive.CardinalitySingle},
		},
		Outputs: []primitive.OutputSpec{
			{Name: "event", Type: value.TypeEvent},
		},
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceEvent,
		},
		State: primitive.StateSpec{Allowed: false},
	}
}

// Manifest reports the primitive's structural contract.
func (t *EmitIfTrue) Manifest() primitive.Manifest {
	return t.manifest
}

// Evaluate emits Emitted when the input is true, NotEmitted otherwise.
func (t *EmitIfTrue) Evaluate(inputs map[string]value.Value, _ map[string]value.Param, _ *primitive.TriggerState) map[string]value.Value {
	shouldEmit, ok := inputs["input"].AsBool()
	if !ok {
		panic(fmt.Sprintf("missing required bool input %q", "input"))
	}

	event := value.NotEmitted
	if shouldEmit {
		event = value.Emitted
	}
	return map[string]value.Value{"event": value.NewTriggerEvent(event)}
}
