// Package compute provides the scalar compute primitives: constants,
// arithmetic, comparison, boolean logic, and select.
package compute

import (
	"fmt"

	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// op binds a manifest to an evaluation closure. All compute primitives here
// are stateless; the state slot is ignored.
type op struct {
	manifest primitive.Manifest
	eval     func(inputs map[string]value.Value, params map[string]value.Param) map[string]value.Value
}

func (o *op) Manifest() primitive.Manifest {
	return o.manifest
}

func (o *op) Compute(inputs map[string]value.Value, params map[string]value.Param, _ *primitive.ComputeState) map[string]value.Value {
	return o.eval(inputs, params)
}

func mustNumber(inputs map[string]value.Value, name string) float64 {
	n, ok := inputs[name].AsNumber()
	if !ok {
		panic(fmt.Sprintf("missing required numeric input %q", name))
	}
	return n
}

func mustBool(inputs map[string]value.Value, name string) bool {
	b, ok := inputs[name].AsBool()
	if !ok {
		panic(fmt.Sprintf("missing required bool input %q", name))
	}
	return b
}

func manifestBase(id string) primitive.Manifest {
	return primitive.Manifest{
		ID:      id,
		Version: "0.1.0",
		Kind:    primitive.KindCompute,
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceContinuous,
		},
		State: primitive.StateSpec{Allowed: false},
	}
}

func numberInput(name string) primitive.InputSpec {
	return primitive.InputSpec{Name: name, Type: value.TypeNumber, Required: true, Cardinality: primitive.CardinalitySingle}
}

func boolInput(name string) primitive.InputSpec {
	return primitive.InputSpec{Name: name, Type: value.TypeBool, Required: true, Cardinality: primitive.CardinalitySingle}
}

func result(v value.Value) map[string]value.Value {
	return map[string]value.Value{"result": v}
}
