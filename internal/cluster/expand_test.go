package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

func implNode(id, implID string) NodeInstance {
	return NodeInstance{
		ID:   id,
		Impl: &ImplRef{ImplID: implID, Version: "0.1.0"},
	}
}

func clusterNode(id, clusterID string) NodeInstance {
	return NodeInstance{
		ID:      id,
		Cluster: &ClusterRef{ClusterID: clusterID, Version: "0.1.0"},
	}
}

func testCatalog(entries map[string]catalogEntry) *catalog.Catalog {
	c := catalog.New()
	for id, entry := range entries {
		manifest := primitive.Manifest{
			ID:      id,
			Version: "0.1.0",
			Kind:    entry.kind,
		}
		for name, ty := range entry.outputs {
			manifest.Outputs = append(manifest.Outputs, primitive.OutputSpec{Name: name, Type: ty})
		}
		c.Add(manifest)
	}
	return c
}

type catalogEntry struct {
	kind    primitive.PrimitiveKind
	outputs map[string]value.ValueType
}

func TestExpandsPrimitiveCluster(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "root",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"p1": implNode("p1", "prim"),
		},
	}

	graph, err := Expand(def, NewMapLoader(), catalog.New())
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 1)
	assert.Empty(t, graph.Edges)

	for _, node := range graph.Nodes {
		assert.Equal(t, []AuthoringStep{{ClusterID: "root", NodeID: "p1"}}, node.AuthoringPath)
		assert.Equal(t, "prim", node.Implementation.ImplID)
	}
}

func TestExpandsNestedClusterAndRewiresInputs(t *testing.T) {
	inner := &ClusterDefinition{
		ID:      "inner",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"leaf": implNode("leaf", "leaf_prim"),
		},
		Edges: []Edge{
			{
				From: OutputRef{NodeID: "in", PortName: "out"},
				To:   InputRef{NodeID: "leaf", PortName: "input"},
			},
		},
		InputPorts: []InputPortSpec{
			{Name: "in_port", MapsTo: GraphInputPlaceholder{Name: "in", Type: value.TypeNumber, Required: true}},
		},
		OutputPorts: []OutputPortSpec{
			{Name: "out_port", MapsTo: OutputRef{NodeID: "leaf", PortName: "out"}},
		},
	}

	outer := &ClusterDefinition{
		ID:      "outer",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"src":    implNode("src", "src_prim"),
			"nested": clusterNode("nested", "inner"),
			"sink":   implNode("sink", "sink_prim"),
		},
		Edges: []Edge{
			{
				From: OutputRef{NodeID: "src", PortName: "emit"},
				To:   InputRef{NodeID: "nested", PortName: "in_port"},
			},
			{
				From: OutputRef{NodeID: "nested", PortName: "out_port"},
				To:   InputRef{NodeID: "sink", PortName: "input"},
			},
		},
	}

	loader := NewMapLoader().Add(inner)
	graph, err := Expand(outer, loader, catalog.New())
	require.NoError(t, err)

	assert.Len(t, graph.Nodes, 3)
	require.Len(t, graph.Edges, 2)
	for _, edge := range graph.Edges {
		assert.False(t, edge.From.IsExternal(), "placeholder survived rewiring: %v", edge)
		assert.False(t, edge.To.IsExternal(), "placeholder became a sink: %v", edge)
	}
}

func TestRuntimeIDsAreReproducible(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "root",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"b": implNode("b", "prim"),
			"a": implNode("a", "prim"),
			"c": implNode("c", "prim"),
		},
	}

	first, err := Expand(def, NewMapLoader(), catalog.New())
	require.NoError(t, err)
	second, err := Expand(def, NewMapLoader(), catalog.New())
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
}

func TestExposedParameterReboundToLiteral(t *testing.T) {
	inner := &ClusterDefinition{
		ID:      "inner",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"leaf": {
				ID:   "leaf",
				Impl: &ImplRef{ImplID: "leaf_prim", Version: "0.1.0"},
				ParameterBindings: map[string]ParameterBinding{
					"threshold": {Exposed: "level"},
				},
			},
		},
	}

	literal := value.NewNumberParam(2.5)
	outer := &ClusterDefinition{
		ID:      "outer",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"nested": {
				ID:      "nested",
				Cluster: &ClusterRef{ClusterID: "inner", Version: "0.1.0"},
				ParameterBindings: map[string]ParameterBinding{
					"level": {Literal: &literal},
				},
			},
		},
	}

	graph, err := Expand(outer, NewMapLoader().Add(inner), catalog.New())
	require.NoError(t, err)

	require.Len(t, graph.Nodes, 1)
	for _, node := range graph.Nodes {
		assert.Equal(t, literal, node.Parameters["threshold"])
	}
}

func TestUnboundExposureIsDropped(t *testing.T) {
	inner := &ClusterDefinition{
		ID:      "inner",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"leaf": {
				ID:   "leaf",
				Impl: &ImplRef{ImplID: "leaf_prim", Version: "0.1.0"},
				ParameterBindings: map[string]ParameterBinding{
					"threshold": {Exposed: "level"},
				},
			},
		},
	}

	outer := &ClusterDefinition{
		ID:      "outer",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"nested": clusterNode("nested", "inner"),
		},
	}

	graph, err := Expand(outer, NewMapLoader().Add(inner), catalog.New())
	require.NoError(t, err)

	for _, node := range graph.Nodes {
		_, bound := node.Parameters["threshold"]
		assert.False(t, bound, "unbound exposure must not resolve to a value")
	}
}

func TestEmptyClusterRejected(t *testing.T) {
	def := &ClusterDefinition{ID: "root", Version: "0.1.0"}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrEmptyCluster{ID: "root"}, err)
}

func TestMissingClusterRejected(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "root",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"nested": clusterNode("nested", "ghost"),
		},
	}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrMissingCluster{ID: "ghost", Version: "0.1.0"}, err)
}

func TestDuplicateInputPortsRejected(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "dup_inputs",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"impl": implNode("impl", "compute"),
		},
		InputPorts: []InputPortSpec{
			{Name: "in", MapsTo: GraphInputPlaceholder{Name: "in_a", Type: value.TypeNumber, Required: true}},
			{Name: "in", MapsTo: GraphInputPlaceholder{Name: "in_b", Type: value.TypeNumber, Required: true}},
		},
	}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrDuplicateInputPort{Name: "in"}, err)
}

func TestDuplicateOutputPortsRejected(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "dup_outputs",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"impl": implNode("impl", "compute"),
		},
		OutputPorts: []OutputPortSpec{
			{Name: "out", MapsTo: OutputRef{NodeID: "impl", PortName: "value"}},
			{Name: "out", MapsTo: OutputRef{NodeID: "impl", PortName: "value"}},
		},
	}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrDuplicateOutputPort{Name: "out"}, err)
}

func TestDuplicateParametersRejected(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "dup_params",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"impl": implNode("impl", "compute"),
		},
		Parameters: []ParameterSpec{
			{Name: "p", Type: value.ParamNumber, Required: true},
			{Name: "p", Type: value.ParamNumber, Required: true},
		},
	}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrDuplicateParameter{Name: "p"}, err)
}

func TestParameterDefaultTypeMismatchRejected(t *testing.T) {
	badDefault := value.NewNumberParam(1.0)
	def := &ClusterDefinition{
		ID:      "bad_default",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"impl": implNode("impl", "compute"),
		},
		Parameters: []ParameterSpec{
			{Name: "flag", Type: value.ParamBool, Default: &badDefault},
		},
	}

	_, err := Expand(def, NewMapLoader(), catalog.New())
	assert.Equal(t, ErrParameterDefaultTypeMismatch{
		Name:     "flag",
		Expected: string(value.ParamBool),
		Got:      string(value.ParamNumber),
	}, err)
}

func TestExternalInputCannotBeEdgeSink(t *testing.T) {
	// An edge targeting a node that does not exist resolves to an
	// external-input sink, which the closure check treats as fatal.
	def := &ClusterDefinition{
		ID:      "malformed",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"source_node": implNode("source_node", "source"),
		},
		Edges: []Edge{
			{
				From: OutputRef{NodeID: "source_node", PortName: "out"},
				To:   InputRef{NodeID: "nonexistent_node", PortName: "in"},
			},
		},
	}

	assert.Panics(t, func() {
		_, _ = Expand(def, NewMapLoader(), catalog.New())
	})
}

func TestDeclaredWireabilityGrantRejectedDuringExpansion(t *testing.T) {
	def := &ClusterDefinition{
		ID:      "root",
		Version: "0.1.0",
		Nodes: map[string]NodeInstance{
			"action_node": implNode("action_node", "action"),
		},
		OutputPorts: []OutputPortSpec{
			{Name: "outcome", MapsTo: OutputRef{NodeID: "action_node", PortName: "outcome"}},
		},
		DeclaredSignature: &Signature{
			Kind: ActionLike,
			Outputs: []PortSpec{
				{Name: "outcome", Type: value.TypeEvent, Cardinality: primitive.CardinalitySingle, Wireable: true},
			},
			HasSideEffects: true,
		},
	}

	cat := testCatalog(map[string]catalogEntry{
		"action": {kind: primitive.KindAction, outputs: map[string]value.ValueType{"outcome": value.TypeEvent}},
	})

	_, err := Expand(def, NewMapLoader(), cat)
	require.Error(t, err)

	var invalid ErrDeclaredSignatureInvalid
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ErrWireabilityExceedsInferred{PortName: "outcome"}, invalid.Err)
}
