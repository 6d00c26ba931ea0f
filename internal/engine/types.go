// Package engine validates expanded graphs and executes them in a single
// deterministic topological pass.
package engine

import (
	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// ValidatedNode is an expanded node with its catalog metadata attached.
type ValidatedNode struct {
	RuntimeID string
	ImplID    string
	Version   string
	Kind      primitive.PrimitiveKind
	// Inputs drive the validator's required-input and type checks and the
	// executor's defensive required-input check.
	Inputs     []catalog.InputMetadata
	Outputs    map[string]catalog.OutputMetadata
	Parameters map[string]value.Param
}

// Endpoint is a node port. External inputs are rejected during validation,
// so validated edges carry node ports only.
type Endpoint struct {
	NodeID   string
	PortName string
}

// ValidatedEdge connects two node ports.
type ValidatedEdge struct {
	From Endpoint
	To   Endpoint
}

// ValidatedGraph is the executor's input: metadata-attached nodes, closed
// edges, a canonical topological order, and the boundary outputs to project
// into the report.
type ValidatedGraph struct {
	Nodes           map[string]ValidatedNode
	Edges           []ValidatedEdge
	TopoOrder       []string
	BoundaryOutputs []cluster.OutputPortSpec
}

// ExecutionContext carries per-trigger-node state across passes. The
// executor clones the map on entry; propagating state between passes is the
// caller's concern.
type ExecutionContext struct {
	TriggerState map[string]*primitive.TriggerState
}

// NewExecutionContext returns a context with an empty state map.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{TriggerState: make(map[string]*primitive.TriggerState)}
}

// ExecutionReport holds the boundary outputs of one pass.
type ExecutionReport struct {
	Outputs map[string]value.Value
}
