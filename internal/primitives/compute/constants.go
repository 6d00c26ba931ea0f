package compute

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// Constant computes emit a configured literal. Registration requires every
// compute to declare an input, so constants carry an optional `gate` input
// that only sequences the node; its value is ignored.

// NewConstNumber emits the numeric `value` parameter.
func NewConstNumber() primitive.Compute {
	m := manifestBase("const_number")
	m.Inputs = []primitive.InputSpec{
		{Name: "gate", Type: value.TypeBool, Required: false, Cardinality: primitive.CardinalitySingle},
	}
	m.Outputs = []primitive.OutputSpec{{Name: "value", Type: value.TypeNumber}}
	m.Parameters = []primitive.ParameterSpec{{Name: "value", Type: value.ParamNumber}}

	return &op{manifest: m, eval: func(_ map[string]value.Value, params map[string]value.Param) map[string]value.Value {
		out := 0.0
		if p, ok := params["value"]; ok && p.Type == value.ParamNumber {
			out = p.Number
		}
		return map[string]value.Value{"value": value.NewNumber(out)}
	}}
}

// NewConstBool emits the boolean `value` parameter.
func NewConstBool() primitive.Compute {
	m := manifestBase("const_bool")
	m.Inputs = []primitive.InputSpec{
		{Name: "gate", Type: value.TypeBool, Required: false, Cardinality: primitive.CardinalitySingle},
	}
	m.Outputs = []primitive.OutputSpec{{Name: "value", Type: value.TypeBool}}
	m.Parameters = []primitive.ParameterSpec{{Name: "value", Type: value.ParamBool}}

	return &op{manifest: m, eval: func(_ map[string]value.Value, params map[string]value.Param) map[string]value.Value {
		out := false
		if p, ok := params["value"]; ok && p.Type == value.ParamBool {
			out = p.Bool
		}
		return map[string]value.Value{"value": value.NewBool(out)}
	}}
}
