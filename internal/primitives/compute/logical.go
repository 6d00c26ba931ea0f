package compute

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

func booleanBinaryOp(id string, eval func(a, b bool) bool) primitive.Compute {
	m := manifestBase(id)
	m.Inputs = []primitive.InputSpec{boolInput("a"), boolInput("b")}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeBool}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		a := mustBool(inputs, "a")
		b := mustBool(inputs, "b")
		return result(value.NewBool(eval(a, b)))
	}}
}

// NewAnd computes logical conjunction.
func NewAnd() primitive.Compute {
	return booleanBinaryOp("and", func(a, b bool) bool { return a && b })
}

// NewOr computes logical disjunction.
func NewOr() primitive.Compute {
	return booleanBinaryOp("or", func(a, b bool) bool { return a || b })
}

// NewNot inverts its input.
func NewNot() primitive.Compute {
	m := manifestBase("not")
	m.Inputs = []primitive.InputSpec{boolInput("value")}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeBool}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		return result(value.NewBool(!mustBool(inputs, "value")))
	}}
}
