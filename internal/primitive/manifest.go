// Package primitive defines the manifest contract every primitive
// implementation publishes, the four kind-specific implementation
// interfaces, and the registries that enforce manifest invariants at
// registration time.
package primitive

import (
	"github.com/kestrelworks/kestrel/internal/validate"
	"github.com/kestrelworks/kestrel/internal/value"
)

// PrimitiveKind partitions the primitive universe. Each kind has its own
// registration invariants and its own value subset at execution time.
type PrimitiveKind string

const (
	KindSource  PrimitiveKind = "source"
	KindCompute PrimitiveKind = "compute"
	KindTrigger PrimitiveKind = "trigger"
	KindAction  PrimitiveKind = "action"
)

// Cadence describes when a primitive produces values.
type Cadence string

const (
	CadenceContinuous Cadence = "continuous"
	CadenceEvent      Cadence = "event"
)

// Cardinality of a declared port. Single unless noted.
type Cardinality string

const (
	CardinalitySingle   Cardinality = "single"
	CardinalityMultiple Cardinality = "multiple"
)

// InputSpec declares one input port of a primitive.
type InputSpec struct {
	Name        string `validate:"required"`
	Type        value.ValueType
	Required    bool
	Cardinality Cardinality
}

// OutputSpec declares one output port of a primitive.
type OutputSpec struct {
	Name string `validate:"required"`
	Type value.ValueType
}

// ParameterSpec declares one parameter, with an optional default literal and
// an optional free-form bounds descriptor.
type ParameterSpec struct {
	Name    string `validate:"required"`
	Type    value.ParameterType
	Default *value.Param
	Bounds  string
}

// ExecutionSpec carries the execution guarantees a primitive declares.
// Retryable is meaningful for actions only.
type ExecutionSpec struct {
	Deterministic bool
	Cadence       Cadence
	Retryable     bool
}

// StateSpec declares whether a primitive keeps internal state. RollingWindow
// is meaningful for computes only.
type StateSpec struct {
	Allowed       bool
	RollingWindow int
}

// Manifest is the structural description of a primitive. Identity is
// (ID, Version). Manifests are pure data: they are built once at registry
// construction and never mutated.
type Manifest struct {
	ID          string `validate:"required,ident"`
	Version     string `validate:"required,semver"`
	Kind        PrimitiveKind
	Inputs      []InputSpec     `validate:"dive"`
	Outputs     []OutputSpec    `validate:"dive"`
	Parameters  []ParameterSpec `validate:"dive"`
	Execution   ExecutionSpec
	State       StateSpec
	SideEffects bool
}

// Validate performs structural validation of the manifest fields. Kind
// invariants are checked separately by the registries.
func (m Manifest) Validate() error {
	return validate.Instance().Struct(m)
}
