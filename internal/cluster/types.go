// Package cluster implements the authoring graph model and its compilation
// into a flat expanded graph of primitive instances. Clusters may embed
// other clusters; expansion erases every composite node while preserving
// authoring provenance, resolves parameter exposure, and checks a declared
// boundary signature against the inferred one.
package cluster

import (
	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// ClusterDefinition is the authoring-time description of a composite graph
// node. Definitions are read-only inputs to expansion.
type ClusterDefinition struct {
	ID                string                  `yaml:"id" validate:"required,ident"`
	Version           string                  `yaml:"version" validate:"required,semver"`
	Nodes             map[string]NodeInstance `yaml:"nodes" validate:"required,min=1,dive"`
	Edges             []Edge                  `yaml:"edges" validate:"dive"`
	InputPorts        []InputPortSpec         `yaml:"input_ports" validate:"dive"`
	OutputPorts       []OutputPortSpec        `yaml:"output_ports" validate:"dive"`
	Parameters        []ParameterSpec         `yaml:"parameters" validate:"dive"`
	DeclaredSignature *Signature              `yaml:"declared_signature"`
}

// NodeInstance places either a primitive implementation or a nested cluster
// into a definition. Exactly one of Impl and Cluster is set.
type NodeInstance struct {
	ID                string                      `yaml:"id"`
	Impl              *ImplRef                    `yaml:"impl"`
	Cluster           *ClusterRef                 `yaml:"cluster"`
	ParameterBindings map[string]ParameterBinding `yaml:"parameters"`
}

// ImplRef names a primitive implementation by identity.
type ImplRef struct {
	ImplID  string `yaml:"id" validate:"required"`
	Version string `yaml:"version" validate:"required"`
}

// ClusterRef names a nested cluster by identity, resolved via a Loader.
type ClusterRef struct {
	ClusterID string `yaml:"id" validate:"required"`
	Version   string `yaml:"version" validate:"required"`
}

// ParameterBinding is either a literal value or an exposure of a parent
// parameter. Exactly one of Literal and Exposed is set.
type ParameterBinding struct {
	Literal *value.Param `yaml:"literal"`
	Exposed string       `yaml:"exposed"`
}

// Edge wires an output port to an input port inside one definition.
type Edge struct {
	From OutputRef `yaml:"from"`
	To   InputRef  `yaml:"to"`
}

// OutputRef names a node-local output port.
type OutputRef struct {
	NodeID   string `yaml:"node" validate:"required"`
	PortName string `yaml:"port" validate:"required"`
}

// InputRef names a node-local input port.
type InputRef struct {
	NodeID   string `yaml:"node" validate:"required"`
	PortName string `yaml:"port" validate:"required"`
}

// InputPortSpec maps an externally visible input port onto a named
// placeholder inside the cluster.
type InputPortSpec struct {
	Name   string                `yaml:"name" validate:"required"`
	MapsTo GraphInputPlaceholder `yaml:"maps_to"`
}

// OutputPortSpec maps an externally visible output port onto a node output
// inside the cluster.
type OutputPortSpec struct {
	Name   string    `yaml:"name" validate:"required"`
	MapsTo OutputRef `yaml:"maps_to"`
}

// GraphInputPlaceholder names an external input slot inside the cluster
// body together with its type.
type GraphInputPlaceholder struct {
	Name     string          `yaml:"name" validate:"required"`
	Type     value.ValueType `yaml:"type"`
	Required bool            `yaml:"required"`
}

// ParameterSpec declares a cluster-level parameter.
type ParameterSpec struct {
	Name     string              `yaml:"name" validate:"required"`
	Type     value.ParameterType `yaml:"type"`
	Default  *value.Param        `yaml:"default"`
	Required bool                `yaml:"required"`
}

// BoundaryKind classifies a cluster's external behavior.
type BoundaryKind string

const (
	SourceLike  BoundaryKind = "source_like"
	ComputeLike BoundaryKind = "compute_like"
	TriggerLike BoundaryKind = "trigger_like"
	ActionLike  BoundaryKind = "action_like"
)

// Signature describes a cluster's boundary: its kind, its ports, and
// whether it carries side effects or originates data.
type Signature struct {
	Kind           BoundaryKind `yaml:"kind"`
	Inputs         []PortSpec   `yaml:"inputs"`
	Outputs        []PortSpec   `yaml:"outputs"`
	HasSideEffects bool         `yaml:"has_side_effects"`
	IsOrigin       bool         `yaml:"is_origin"`
}

// PortSpec is one port of a signature. Wireable marks whether the port may
// participate as a data-carrying edge endpoint outside the cluster.
type PortSpec struct {
	Name        string                `yaml:"name"`
	Type        value.ValueType       `yaml:"type"`
	Cardinality primitive.Cardinality `yaml:"cardinality"`
	Wireable    bool                  `yaml:"wireable"`
}

// ExpandedGraph is the flat compilation output: primitive instances, edges,
// and the root's boundary ports. Boundary inputs feed signature inference
// only; boundary outputs also name the values the executor copies into its
// report.
type ExpandedGraph struct {
	Nodes           map[string]ExpandedNode
	Edges           []ExpandedEdge
	BoundaryInputs  []InputPortSpec
	BoundaryOutputs []OutputPortSpec
}

// ExpandedNode holds only implementation identity, resolved literal
// parameters, and the authoring trace. Clusters do not exist at this layer.
type ExpandedNode struct {
	RuntimeID      string
	AuthoringPath  []AuthoringStep
	Implementation ImplRef
	Parameters     map[string]value.Param
}

// AuthoringStep records one (cluster, node) hop of the provenance trace.
type AuthoringStep struct {
	ClusterID string
	NodeID    string
}

// ExpandedEdge connects two expanded endpoints.
type ExpandedEdge struct {
	From ExpandedEndpoint
	To   ExpandedEndpoint
}

// ExpandedEndpoint is either a node port or an external-input placeholder.
// External names are globally unique keys derived from the authoring path.
type ExpandedEndpoint struct {
	NodeID   string
	PortName string
	External string
}

// NodePort builds a node-port endpoint.
func NodePort(nodeID, portName string) ExpandedEndpoint {
	return ExpandedEndpoint{NodeID: nodeID, PortName: portName}
}

// ExternalInput builds an external-input placeholder endpoint.
func ExternalInput(name string) ExpandedEndpoint {
	return ExpandedEndpoint{External: name}
}

// IsExternal reports whether the endpoint is an external-input placeholder.
func (e ExpandedEndpoint) IsExternal() bool {
	return e.External != ""
}

// Catalog is the structural lookup the expander and signature inference
// consult. *catalog.Catalog satisfies it.
type Catalog interface {
	Get(id, version string) (catalog.PrimitiveMetadata, bool)
}

// Loader resolves nested cluster definitions by identity.
type Loader interface {
	Load(id, version string) (*ClusterDefinition, bool)
}
