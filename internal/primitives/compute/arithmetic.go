package compute

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

func binaryNumberOp(id string, eval func(a, b float64) float64) primitive.Compute {
	m := manifestBase(id)
	m.Inputs = []primitive.InputSpec{numberInput("a"), numberInput("b")}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeNumber}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		a := mustNumber(inputs, "a")
		b := mustNumber(inputs, "b")
		return result(value.NewNumber(eval(a, b)))
	}}
}

// NewAdd sums two scalars.
func NewAdd() primitive.Compute {
	return binaryNumberOp("add", func(a, b float64) float64 { return a + b })
}

// NewSubtract subtracts b from a.
func NewSubtract() primitive.Compute {
	return binaryNumberOp("subtract", func(a, b float64) float64 { return a - b })
}

// NewMultiply multiplies two scalars.
func NewMultiply() primitive.Compute {
	return binaryNumberOp("multiply", func(a, b float64) float64 { return a * b })
}

// NewDivide divides a by b. Division by zero follows IEEE-754.
func NewDivide() primitive.Compute {
	return binaryNumberOp("divide", func(a, b float64) float64 { return a / b })
}

// NewNegate flips the sign of its input.
func NewNegate() primitive.Compute {
	m := manifestBase("negate")
	m.Inputs = []primitive.InputSpec{numberInput("value")}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeNumber}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		return result(value.NewNumber(-mustNumber(inputs, "value")))
	}}
}
