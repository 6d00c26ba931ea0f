package supervisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/kestrel/internal/adapter"
	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/internal/supervisor"
	"github.com/kestrelworks/kestrel/internal/value"
)

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

// The supervisor drives the real runtime end to end: the graph executes
// and the decision log records a completed invocation.
func TestSupervisorWithRealRuntimeExecutesHelloWorld(t *testing.T) {
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	registries, err := primitives.CoreRegistries()
	require.NoError(t, err)

	runtime := adapter.NewRuntimeHandle(helloWorldGraph(), cat, registries)
	log := supervisor.NewMemoryDecisionLog()
	sup := supervisor.New("hello_world", supervisor.Constraints{}, log, runtime)

	sup.OnEvent(adapter.Mechanical("test_event", adapter.KindTick))

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, supervisor.DecisionInvoke, entries[0].Decision)
	assert.Equal(t, adapter.Completed(), entries[0].Termination)
}

func TestCapturedRealRuntimeSessionReplays(t *testing.T) {
	cat, err := primitives.CoreCatalog()
	require.NoError(t, err)
	registries, err := primitives.CoreRegistries()
	require.NoError(t, err)

	runtime := adapter.NewRuntimeHandle(helloWorldGraph(), cat, registries)
	session := supervisor.NewCapturingSession("hello_world", supervisor.Constraints{}, supervisor.NewMemoryDecisionLog(), runtime)

	for _, id := range []string{"e1", "e2", "e3"} {
		session.OnEvent(adapter.Mechanical(adapter.EventID(id), adapter.KindTick))
	}

	bundle := session.Bundle()
	require.Len(t, bundle.Decisions, 3)

	// The real runtime completes every event, so replaying against a
	// completing fault handle reproduces the decisions exactly.
	replayed := supervisor.Replay(&bundle, adapter.NewFaultRuntimeHandle(adapter.Completed()))
	assert.Equal(t, bundle.Decisions, replayed)
}
