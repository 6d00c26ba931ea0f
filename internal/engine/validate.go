package engine

import (
	"sort"

	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// wiringMatrix encodes edge-kind legality: sources feed computes, computes
// feed computes and triggers, triggers feed triggers and actions. Nothing
// feeds a source; nothing consumes an action.
var wiringMatrix = map[primitive.PrimitiveKind]map[primitive.PrimitiveKind]bool{
	primitive.KindSource:  {primitive.KindCompute: true},
	primitive.KindCompute: {primitive.KindCompute: true, primitive.KindTrigger: true},
	primitive.KindTrigger: {primitive.KindTrigger: true, primitive.KindAction: true},
	primitive.KindAction:  {},
}

// Validate checks an expanded graph against the catalog and produces the
// executor's input. Each stage fails fast on the first violation.
func Validate(graph *cluster.ExpandedGraph, cat cluster.Catalog) (*ValidatedGraph, error) {
	nodes := make(map[string]ValidatedNode, len(graph.Nodes))
	for runtimeID, node := range graph.Nodes {
		meta, ok := cat.Get(node.Implementation.ImplID, node.Implementation.Version)
		if !ok {
			return nil, ErrMissingPrimitive{
				ID:      node.Implementation.ImplID,
				Version: node.Implementation.Version,
			}
		}
		nodes[runtimeID] = ValidatedNode{
			RuntimeID:  runtimeID,
			ImplID:     node.Implementation.ImplID,
			Version:    node.Implementation.Version,
			Kind:       meta.Kind,
			Inputs:     meta.Inputs,
			Outputs:    meta.Outputs,
			Parameters: node.Parameters,
		}
	}

	edges := make([]ValidatedEdge, 0, len(graph.Edges))
	for _, edge := range graph.Edges {
		if edge.From.IsExternal() {
			return nil, ErrExternalInputNotAllowed{Name: edge.From.External}
		}
		if edge.To.IsExternal() {
			return nil, ErrExternalInputNotAllowed{Name: edge.To.External}
		}
		edges = append(edges, ValidatedEdge{
			From: Endpoint{NodeID: edge.From.NodeID, PortName: edge.From.PortName},
			To:   Endpoint{NodeID: edge.To.NodeID, PortName: edge.To.PortName},
		})
	}

	topoOrder, err := topologicalOrder(nodes, edges)
	if err != nil {
		return nil, err
	}

	for _, edge := range edges {
		from := nodes[edge.From.NodeID]
		to := nodes[edge.To.NodeID]
		if !wiringMatrix[from.Kind][to.Kind] {
			return nil, ErrInvalidEdgeKind{From: from.Kind, To: to.Kind}
		}
	}

	for _, runtimeID := range topoOrder {
		node := nodes[runtimeID]
		for _, input := range node.Inputs {
			if !input.Required {
				continue
			}
			incoming := 0
			for _, edge := range edges {
				if edge.To.NodeID == runtimeID && edge.To.PortName == input.Name {
					incoming++
				}
			}
			if incoming != 1 {
				return nil, ErrMissingRequiredInput{Node: runtimeID, Input: input.Name}
			}
		}
	}

	for _, edge := range edges {
		from := nodes[edge.From.NodeID]
		to := nodes[edge.To.NodeID]

		outMeta, ok := from.Outputs[edge.From.PortName]
		if !ok {
			return nil, ErrMissingOutputMetadata{Node: edge.From.NodeID, Output: edge.From.PortName}
		}

		inMeta, found := findInput(to.Inputs, edge.To.PortName)
		if !found {
			return nil, ErrMissingInputMetadata{Node: edge.To.NodeID, Input: edge.To.PortName}
		}

		if outMeta.Type != inMeta.Type {
			return nil, ErrTypeMismatch{
				From:     edge.From.NodeID,
				Output:   edge.From.PortName,
				To:       edge.To.NodeID,
				Input:    edge.To.PortName,
				Expected: inMeta.Type,
				Got:      outMeta.Type,
			}
		}
	}

	for runtimeID, node := range nodes {
		if node.Kind != primitive.KindAction {
			continue
		}
		if !actionIsGated(runtimeID, nodes, edges) {
			return nil, ErrActionNotGated{Node: runtimeID}
		}
	}

	return &ValidatedGraph{
		Nodes:           nodes,
		Edges:           edges,
		TopoOrder:       topoOrder,
		BoundaryOutputs: append([]cluster.OutputPortSpec(nil), graph.BoundaryOutputs...),
	}, nil
}

// topologicalOrder runs Kahn's algorithm frontier by frontier: the whole
// current zero-indegree set is emitted in sorted order before the nodes it
// releases are considered, so the order is canonical for a given graph.
func topologicalOrder(nodes map[string]ValidatedNode, edges []ValidatedEdge) ([]string, error) {
	indegree := make(map[string]int, len(nodes))
	for id := range nodes {
		indegree[id] = 0
	}
	for _, edge := range edges {
		indegree[edge.To.NodeID]++
	}

	var frontier []string
	for id, degree := range indegree {
		if degree == 0 {
			frontier = append(frontier, id)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(frontier) > 0 {
		sort.Strings(frontier)
		order = append(order, frontier...)

		var released []string
		for _, id := range frontier {
			for _, edge := range edges {
				if edge.From.NodeID != id {
					continue
				}
				indegree[edge.To.NodeID]--
				if indegree[edge.To.NodeID] == 0 {
					released = append(released, edge.To.NodeID)
				}
			}
		}
		frontier = released
	}

	if len(order) != len(nodes) {
		return nil, ErrCycleDetected{}
	}
	return order, nil
}

func findInput(inputs []catalog.InputMetadata, name string) (catalog.InputMetadata, bool) {
	for _, input := range inputs {
		if input.Name == name {
			return input, true
		}
	}
	return catalog.InputMetadata{}, false
}

func actionIsGated(actionID string, nodes map[string]ValidatedNode, edges []ValidatedEdge) bool {
	for _, edge := range edges {
		if edge.To.NodeID != actionID {
			continue
		}
		from, ok := nodes[edge.From.NodeID]
		if !ok || from.Kind != primitive.KindTrigger {
			continue
		}
		if outMeta, ok := from.Outputs[edge.From.PortName]; ok && outMeta.Type == value.TypeEvent {
			return true
		}
	}
	return false
}
