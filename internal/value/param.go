package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParameterType identifies the variant carried by a Param.
type ParameterType string

const (
	ParamInt    ParameterType = "int"
	ParamNumber ParameterType = "number"
	ParamBool   ParameterType = "bool"
	ParamString ParameterType = "string"
	ParamEnum   ParameterType = "enum"
)

// Param is a tagged union over literal parameter values. All fields are
// scalar so Param is comparable with ==.
type Param struct {
	Type   ParameterType
	Int    int64
	Number float64
	Bool   bool
	Str    string
}

// NewIntParam wraps an integer literal.
func NewIntParam(i int64) Param {
	return Param{Type: ParamInt, Int: i}
}

// NewNumberParam wraps a numeric literal.
func NewNumberParam(n float64) Param {
	return Param{Type: ParamNumber, Number: n}
}

// NewBoolParam wraps a boolean literal.
func NewBoolParam(b bool) Param {
	return Param{Type: ParamBool, Bool: b}
}

// NewStringParam wraps a string literal.
func NewStringParam(s string) Param {
	return Param{Type: ParamString, Str: s}
}

// NewEnumParam wraps an enum variant name.
func NewEnumParam(s string) Param {
	return Param{Type: ParamEnum, Str: s}
}

func (p Param) String() string {
	switch p.Type {
	case ParamInt:
		return fmt.Sprintf("int(%d)", p.Int)
	case ParamNumber:
		return fmt.Sprintf("number(%g)", p.Number)
	case ParamBool:
		return fmt.Sprintf("bool(%t)", p.Bool)
	case ParamString:
		return fmt.Sprintf("string(%q)", p.Str)
	case ParamEnum:
		return fmt.Sprintf("enum(%s)", p.Str)
	default:
		return "param(?)"
	}
}

// UnmarshalYAML decodes a parameter literal from its natural scalar form:
// integers become Int, floats Number, booleans Bool, strings String. The
// explicit mapping form `{enum: variant}` selects the Enum variant.
func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var wrapper struct {
			Enum *string `yaml:"enum"`
		}
		if err := node.Decode(&wrapper); err != nil {
			return err
		}
		if wrapper.Enum == nil {
			return fmt.Errorf("parameter literal mapping must be {enum: name}")
		}
		*p = NewEnumParam(*wrapper.Enum)
		return nil
	}

	var i int64
	if err := node.Decode(&i); err == nil && node.Tag == "!!int" {
		*p = NewIntParam(i)
		return nil
	}
	var f float64
	if err := node.Decode(&f); err == nil && node.Tag == "!!float" {
		*p = NewNumberParam(f)
		return nil
	}
	var b bool
	if err := node.Decode(&b); err == nil && node.Tag == "!!bool" {
		*p = NewBoolParam(b)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*p = NewStringParam(s)
	return nil
}
