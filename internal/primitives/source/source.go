// Package source provides the constant source primitives: number_source
// and boolean_source.
package source

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// NumberSource emits a constant scalar configured by the `value` parameter.
type NumberSource struct {
	manifest primitive.Manifest
}

// NewNumberSource constructs the primitive with its manifest.
func NewNumberSource() *NumberSource {
	return &NumberSource{manifest: numberSourceManifest()}
}

func numberSourceManifest() primitive.Manifest {
	return primitive.Manifest{
		ID:      "number_source",
		Version: "0.1.0",
		Kind:    primitive.KindSource,
		Outputs: []primitive.OutputSpec{
			{Name: "value", Type: value.TypeNumber},
		},
		Parameters: []primitive.ParameterSpec{
			{Name: "value", Type: value.ParamNumber, Default: paramPtr(value.NewNumberParam(0))},
		},
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceContinuous,
		},
		State: primitive.StateSpec{Allowed: false},
	}
}

// Manifest reports the primitive's structural contract.
func (s *NumberSource) Manifest() primitive.Manifest {
	return s.manifest
}

// Produce emits the configured value.
func (s *NumberSource) Produce(params map[string]value.Param) map[string]value.Value {
	out := 0.0
	if p, ok := params["value"]; ok {
		switch p.Type {
		case value.ParamNumber:
			out = p.Number
		case value.ParamInt:
			out = float64(p.Int)
		}
	}
	return map[string]value.Value{"value": value.NewNumber(out)}
}

// BooleanSource emits a constant boolean configured by the `value`
// parameter.
type BooleanSource struct {
	manifest primitive.Manifest
}

// NewBooleanSource constructs the primitive with its manifest.
func NewBooleanSource() *BooleanSource {
	return &BooleanSource{manifest: booleanSourceManifest()}
}

func booleanSourceManifest() primitive.Manifest {
	return primitive.Manifest{
		ID:      "boolean_source",
		Version: "0.1.0",
		Kind:    primitive.KindSource,
		Outputs: []primitive.OutputSpec{
			{Name: "value", Type: value.TypeBool},
		},
		Parameters: []primitive.ParameterSpec{
			{Name: "value", Type: value.ParamBool, Default: paramPtr(value.NewBoolParam(false))},
		},
		Execution: primitive.ExecutionSpec{
			Deterministic: true,
			Cadence:       primitive.CadenceContinuous,
		},
		State: primitive.StateSpec{Allowed: false},
	}
}

// Manifest reports the primitive's structural contract.
func (s *BooleanSource) Manifest() primitive.Manifest {
	return s.manifest
}

// Produce emits the configured value.
func (s *BooleanSource) Produce(params map[string]value.Param) map[string]value.Value {
	out := false
	if p, ok := params["value"]; ok && p.Type == value.ParamBool {
		out = p.Bool
	}
	return map[string]value.Value{"value": value.NewBool(out)}
}

func paramPtr(p value.Param) *value.Param {
	return &p
}
