package compute

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

func comparisonOp(id string, eval func(a, b float64) bool) primitive.Compute {
	m := manifestBase(id)
	m.Inputs = []primitive.InputSpec{numberInput("a"), numberInput("b")}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeBool}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		a := mustNumber(inputs, "a")
		b := mustNumber(inputs, "b")
		return result(value.NewBool(eval(a, b)))
	}}
}

// NewGt compares a > b.
func NewGt() primitive.Compute {
	return comparisonOp("gt", func(a, b float64) bool { return a > b })
}

// NewLt compares a < b.
func NewLt() primitive.Compute {
	return comparisonOp("lt", func(a, b float64) bool { return a < b })
}

// NewEq compares a == b.
func NewEq() primitive.Compute {
	return comparisonOp("eq", func(a, b float64) bool { return a == b })
}

// NewNeq compares a != b.
func NewNeq() primitive.Compute {
	return comparisonOp("neq", func(a, b float64) bool { return a != b })
}
