package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/engine"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/internal/value"
)

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func helloWorldGraph() *cluster.ExpandedGraph {
	node := func(id, implID string, params map[string]value.Param) cluster.ExpandedNode {
		return cluster.ExpandedNode{
			RuntimeID:      id,
			Implementation: cluster.ImplRef{ImplID: implID, Version: "0.1.0"},
			Parameters:     params,
		}
	}

	return &cluster.ExpandedGraph{
		Nodes: map[string]cluster.ExpandedNode{
			"src_a": node("src_a", "number_source", map[string]value.Param{"value": value.NewNumberParam(3.0)}),
			"src_b": node("src_b", "number_source", map[string]value.Param{"value": value.NewNumberParam(1.0)}),
			"gt1":   node("gt1", "gt", nil),
			"emit":  node("emit", "emit_if_true", nil),
			"act":   node("act", "ack_action", map[string]value.Param{"accept": value.NewBoolParam(true)}),
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

func TestRuntimeHandleCompletesHelloWorld(t *testing.T) {
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	registries, err := primitives.CoreRegistries()
	require.NoError(t, err)

	handle := NewRuntimeHandle(helloWorldGraph(), cat, registries)
	termination := handle.Run("hello_world", "e1", engine.NewExecutionContext(), nil)

	assert.Equal(t, Completed(), termination)
}

func TestRuntimeHandleReportsValidationFailure(t *testing.T) {
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	registries, err := primitives.CoreRegistries()
	require.NoError(t, err)

	graph := helloWorldGraph()
	graph.Edges = graph.Edges[1:] // break required-input coverage

	handle := NewRuntimeHandle(graph, cat, registries)
	termination := handle.Run("hello_world", "e1", engine.NewExecutionContext(), nil)

	assert.Equal(t, Failed(ErrValidationFailed), termination)
}

func TestZeroDeadlineAbortsImmediately(t *testing.T) {
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	registries, err := primitives.CoreRegistries()
	require.NoError(t, err)

	handle := NewRuntimeHandle(helloWorldGraph(), cat, registries)
	termination := handle.Run("hello_world", "e1", engine.NewExecutionContext(), durationPtr(0))

	assert.Equal(t, Aborted(), termination)
}

func TestFaultHandleScriptsOutcomesPerEvent(t *testing.T) {
	handle := NewFaultRuntimeHandle(Completed())
	handle.PushOutcomes("e1", []RunTermination{
		Failed(ErrNetworkTimeout),
		Completed(),
	})

	assert.Equal(t, Failed(ErrNetworkTimeout), handle.Run("g", "e1", nil, nil))
	assert.Equal(t, Completed(), handle.Run("g", "e1", nil, nil))
	assert.Equal(t, Completed(), handle.Run("g", "e1", nil, nil))
	assert.Equal(t, Completed(), handle.Run("g", "e2", nil, nil))

	assert.Equal(t, []EventID{"e1", "e1", "e1", "e2"}, handle.Invocations())
}

func TestFaultHandleHonorsZeroDeadline(t *testing.T) {
	handle := NewFaultRuntimeHandle(Completed())
	assert.Equal(t, Aborted(), handle.Run("g", "e1", nil, durationPtr(0)))
	assert.Empty(t, handle.Invocations())
}
