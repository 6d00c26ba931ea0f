package compute

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// NewSelect picks between two scalars on a boolean condition. Both branches
// must be Number; there is no implicit coercion between branch types.
func NewSelect() primitive.Compute {
	m := manifestBase("select")
	m.Inputs = []primitive.InputSpec{
		boolInput("cond"),
		numberInput("when_true"),
		numberInput("when_false"),
	}
	m.Outputs = []primitive.OutputSpec{{Name: "result", Type: value.TypeNumber}}

	return &op{manifest: m, eval: func(inputs map[string]value.Value, _ map[string]value.Param) map[string]value.Value {
		cond := mustBool(inputs, "cond")
		whenTrue := mustNumber(inputs, "when_true")
		whenFalse := mustNumber(inputs, "when_false")

		out := whenFalse
		if cond {
			out = whenTrue
		}
		return result(value.NewNumber(out))
	}}
}
