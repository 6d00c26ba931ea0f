package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/engine"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/internal/value"
)

func coreCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	return cat
}

func expandedNode(runtimeID, implID string, params map[string]value.Param) cluster.ExpandedNode {
	return cluster.ExpandedNode{
		RuntimeID:      runtimeID,
		Implementation: cluster.ImplRef{ImplID: implID, Version: "0.1.0"},
		Parameters:     params,
	}
}

// helloWorldGraph wires number_source(3.0) and number_source(1.0) into gt,
// gt into emit_if_true, and the trigger into ack_action.
func helloWorldGraph() *cluster.ExpandedGraph {
	return &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"src_a": expandedNode("src_a", "number_source", map[string]value.Param{"value": value.NewNumberParam(3.0)}),
			"src_b": expandedNode("src_b", "number_source", map[string]value.Param{"value": value.NewNumberParam(1.0)}),
			"gt1":   expandedNode("gt1", "gt", nil),
			"emit":  expandedNode("emit", "emit_if_true", nil),
			"act":   expandedNode("act", "ack_action", map[string]value.Param{"accept": value.NewBoolParam(true)}),
		},
		Edges: []cluster.ExpandedEdge{
			{From: cluster.NodePort("src_a", "value"), To: cluster.NodePort("gt1", "a")},
			{From: cluster.NodePort("src_b", "value"), To: cluster.NodePort("gt1", "b")},
			{From: cluster.NodePort("gt1", "result"), To: cluster.NodePort("emit", "input")},
			{From: cluster.NodePort("emit", "event"), To: cluster.NodePort("act", "event")},
		},
		BoundaryOutputs: []cluster.OutputPortSpec{
			{Name: "action_outcome", MapsTo: cluster.OutputRef{NodeID: "act", PortName: "outcome"}},
		},
	}
}

func TestValidateHelloWorld(t *testing.T) {
	validated, err := engine.Validate(helloWorldGraph(), coreCatalog(t))
	require.NoError(t, err)

	assert.Len(t, validated.Nodes, 5)
	assert.Len(t, validated.Edges, 4)
	assert.Len(t, validated.TopoOrder, 5)

	// Sources precede the comparison, which precedes trigger and action.
	position := make(map[string]int, len(validated.TopoOrder))
	for i, id := range validated.TopoOrder {
		position[id] = i
	}
	assert.Less(t, position["src_a"], position["gt1"])
	assert.Less(t, position["src_b"], position["gt1"])
	assert.Less(t, position["gt1"], position["emit"])
	assert.Less(t, position["emit"], position["act"])
}

// Two independent chains whose second stages sort opposite to their
// sources: the canonical order emits each frontier fully, in sorted order,
// before anything it released.
func TestTopologicalOrderIsCanonical(t *testing.T) {
	graph := &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"a_src": expandedNode("a_src", "number_source", map[string]value.Param{"value": value.NewNumberParam(1.0)}),
			"z_src": expandedNode("z_src", "number_source", map[string]value.Param{"value": value.NewNumberParam(2.0)}),
			"a_mid": expandedNode("a_mid", "negate", nil),
			"z_mid": expandedNode("z_mid", "negate", nil),
		},
		Edges: []cluster.ExpandedEdge{
			{From: cluster.NodePort("a_src", "value"), To: cluster.NodePort("z_mid", "value")},
			{From: cluster.NodePort("z_src", "value"), To: cluster.NodePort("a_mid", "value")},
		},
	}

	validated, err := engine.Validate(graph, coreCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"a_src", "z_src", "a_mid", "z_mid"}, validated.TopoOrder)
}

func TestTopologicalOrderIsDeterministic(t *testing.T) {
	cat := coreCatalog(t)

	first, err := engine.Validate(helloWorldGraph(), cat)
	require.NoError(t, err)
	second, err := engine.Validate(helloWorldGraph(), cat)
	require.NoError(t, err)

	assert.Equal(t, first.TopoOrder, second.TopoOrder)
}

func TestMissingRequiredInputReported(t *testing.T) {
	graph := helloWorldGraph()
	graph.Edges = graph.Edges[1:] // drop src_a -> gt1.a

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrMissingRequiredInput{Node: "gt1", Input: "a"}, err)
}

func TestMissingPrimitiveReported(t *testing.T) {
	graph := helloWorldGraph()
	graph.Nodes["ghost"] = expandedNode("ghost", "unknown_impl", nil)

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrMissingPrimitive{ID: "unknown_impl", Version: "0.1.0"}, err)
}

func TestExternalInputRejected(t *testing.T) {
	graph := helloWorldGraph()
	graph.Edges = append(graph.Edges, cluster.ExpandedEdge{
		From: cluster.ExternalInput("root/feed"),
		To:   cluster.NodePort("gt1", "a"),
	})

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrExternalInputNotAllowed{Name: "root/feed"}, err)
}

func TestWiringMatrixRejectsSourceToTrigger(t *testing.T) {
	graph := &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"src":  expandedNode("src", "boolean_source", map[string]value.Param{"value": value.NewBoolParam(true)}),
			"emit": expandedNode("emit", "emit_if_true", nil),
		},
		Edges: []cluster.ExpandedEdge{
			{From: cluster.NodePort("src", "value"), To: cluster.NodePort("emit", "input")},
		},
	}

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrInvalidEdgeKind{From: primitive.KindSource, To: primitive.KindTrigger}, err)
}

func TestCycleDetected(t *testing.T) {
	graph := &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"add1": expandedNode("add1", "add", nil),
			"add2": expandedNode("add2", "add", nil),
		},
		Edges: []cluster.ExpandedEdge{
			{From: cluster.NodePort("add1", "result"), To: cluster.NodePort("add2", "a")},
			{From: cluster.NodePort("add2", "result"), To: cluster.NodePort("add1", "a")},
		},
	}

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrCycleDetected{}, err)
}

func TestTypeMismatchReported(t *testing.T) {
	graph := &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"src_a": expandedNode("src_a", "boolean_source", map[string]value.Param{"value": value.NewBoolParam(true)}),
			"src_b": expandedNode("src_b", "number_source", map[string]value.Param{"value": value.NewNumberParam(1.0)}),
			"gt1":   expandedNode("gt1", "gt", nil),
		},
		Edges: []cluster.ExpandedEdge{
			{From: cluster.NodePort("src_a", "value"), To: cluster.NodePort("gt1", "a")},
			{From: cluster.NodePort("src_b", "value"), To: cluster.NodePort("gt1", "b")},
		},
	}

	_, err := engine.Validate(graph, coreCatalog(t))
	assert.Equal(t, engine.ErrTypeMismatch{
		From:     "src_a",
		Output:   "value",
		To:       "gt1",
		Input:    "a",
		Expected: value.TypeNumber,
		Got:      value.TypeBool,
	}, err)
}

func TestActionWithoutGatingTriggerRejected(t *testing.T) {
	// An action whose event input is optional passes required-input
	// coverage yet still violates gating.
	cat := catalog.New()
	cat.Add(primitive.Manifest{
		ID:      "loose_action",
		Version: "0.1.0",
		Kind:    primitive.KindAction,
		Inputs: []primitive.InputSpec{
			{Name: "event", Type: value.TypeEvent, Required: false},
		},
		Outputs: []primitive.OutputSpec{{Name: "outcome", Type: value.TypeEvent}},
	})

	graph := &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"act": expandedNode("act", "loose_action", nil),
		},
	}

	_, err := engine.Validate(graph, cat)
	assert.Equal(t, engine.ErrActionNotGated{Node: "act"}, err)
}
