package cluster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrelworks/kestrel/internal/value"
)

// Expand compiles a root definition into a flat graph of primitive
// instances. Nested clusters are resolved through the loader, parameter
// exposure is rewritten one level at a time, and the root's boundary ports
// are carried over for signature inference. When the root declares a
// signature it is checked against the inferred one before returning.
func Expand(def *ClusterDefinition, loader Loader, cat Catalog) (*ExpandedGraph, error) {
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	ctx := &expandContext{}
	build, err := expandWithContext(def, loader, ctx, nil)
	if err != nil {
		return nil, err
	}

	graph := build.graph
	graph.BoundaryInputs = append([]InputPortSpec(nil), def.InputPorts...)
	graph.BoundaryOutputs = mapBoundaryOutputs(def.OutputPorts, build.nodeMapping)

	// No edge may sink into an external-input placeholder after expansion.
	// Only a malformed definition can reach this.
	for _, edge := range graph.Edges {
		if edge.To.IsExternal() {
			panic(fmt.Sprintf("external input %q cannot be an edge sink after expansion", edge.To.External))
		}
	}

	if def.DeclaredSignature != nil {
		inferred, err := InferSignature(graph, cat)
		if err != nil {
			return nil, ErrSignatureInference{Err: err}
		}
		if err := ValidateDeclaredSignature(def.DeclaredSignature, inferred); err != nil {
			return nil, ErrDeclaredSignatureInvalid{Err: err}
		}
	}

	return graph, nil
}

func validateDefinition(def *ClusterDefinition) error {
	inputNames := make(map[string]struct{}, len(def.InputPorts))
	for _, input := range def.InputPorts {
		if _, dup := inputNames[input.Name]; dup {
			return ErrDuplicateInputPort{Name: input.Name}
		}
		inputNames[input.Name] = struct{}{}
	}

	outputNames := make(map[string]struct{}, len(def.OutputPorts))
	for _, output := range def.OutputPorts {
		if _, dup := outputNames[output.Name]; dup {
			return ErrDuplicateOutputPort{Name: output.Name}
		}
		outputNames[output.Name] = struct{}{}
	}

	paramNames := make(map[string]struct{}, len(def.Parameters))
	for _, param := range def.Parameters {
		if _, dup := paramNames[param.Name]; dup {
			return ErrDuplicateParameter{Name: param.Name}
		}
		paramNames[param.Name] = struct{}{}

		if param.Default != nil && param.Default.Type != param.Type {
			return ErrParameterDefaultTypeMismatch{
				Name:     param.Name,
				Expected: string(param.Type),
				Got:      string(param.Default.Type),
			}
		}
	}

	return nil
}

// expandContext allocates runtime ids scoped to one root expansion.
type expandContext struct {
	nextID int
}

func (c *expandContext) nextRuntimeID() string {
	id := fmt.Sprintf("n%d", c.nextID)
	c.nextID++
	return id
}

type expandBuild struct {
	graph *ExpandedGraph
	// nodeMapping translates authoring node ids to runtime ids.
	nodeMapping map[string]string
	// placeholderMap translates this cluster's placeholder names to their
	// globally unique external keys.
	placeholderMap map[string]string
}

func expandWithContext(def *ClusterDefinition, loader Loader, ctx *expandContext, prefix []AuthoringStep) (*expandBuild, error) {
	if len(def.Nodes) == 0 {
		return nil, ErrEmptyCluster{ID: def.ID}
	}

	placeholderMap := buildPlaceholderMap(prefix, def.ID, def.InputPorts)

	graph := &ExpandedGraph{Nodes: make(map[string]ExpandedNode)}
	nodeMapping := make(map[string]string)
	clusterOutputMap := make(map[string]map[string]ExpandedEndpoint)
	clusterInputMap := make(map[string]map[string]string)

	// Runtime ids must be reproducible across runs, so authoring nodes are
	// visited in sorted id order rather than map order.
	for _, nodeID := range sortedNodeIDs(def.Nodes) {
		node := def.Nodes[nodeID]
		switch {
		case node.Impl != nil:
			runtimeID := ctx.nextRuntimeID()
			path := append(append([]AuthoringStep(nil), prefix...), AuthoringStep{
				ClusterID: def.ID,
				NodeID:    node.ID,
			})

			graph.Nodes[runtimeID] = ExpandedNode{
				RuntimeID:      runtimeID,
				AuthoringPath:  path,
				Implementation: *node.Impl,
				Parameters:     resolveParameterBindings(node.ParameterBindings),
			}
			nodeMapping[node.ID] = runtimeID

		case node.Cluster != nil:
			nested, ok := loader.Load(node.Cluster.ClusterID, node.Cluster.Version)
			if !ok {
				return nil, ErrMissingCluster{ID: node.Cluster.ClusterID, Version: node.Cluster.Version}
			}

			bound := applyLiteralBindings(nested, node.ParameterBindings)

			nestedPrefix := append(append([]AuthoringStep(nil), prefix...), AuthoringStep{
				ClusterID: def.ID,
				NodeID:    node.ID,
			})

			nestedBuild, err := expandWithContext(bound, loader, ctx, nestedPrefix)
			if err != nil {
				return nil, err
			}

			mergeGraph(graph, nestedBuild.graph)

			inputMap := make(map[string]string)
			for _, inputPort := range bound.InputPorts {
				if key, ok := nestedBuild.placeholderMap[inputPort.MapsTo.Name]; ok {
					inputMap[inputPort.Name] = key
				}
			}
			clusterInputMap[node.ID] = inputMap

			outputMap := make(map[string]ExpandedEndpoint)
			for _, outputPort := range bound.OutputPorts {
				if runtimeID, ok := nestedBuild.nodeMapping[outputPort.MapsTo.NodeID]; ok {
					outputMap[outputPort.Name] = NodePort(runtimeID, outputPort.MapsTo.PortName)
				}
			}
			clusterOutputMap[node.ID] = outputMap

			for authored, runtimeID := range nestedBuild.nodeMapping {
				nodeMapping[authored] = runtimeID
			}

		default:
			return nil, fmt.Errorf("node %q in cluster %q names neither an implementation nor a cluster", node.ID, def.ID)
		}
	}

	for _, edge := range def.Edges {
		from := resolveOutputEndpoint(edge.From, nodeMapping, clusterOutputMap, prefix, def.ID)
		to := resolveInputEndpoint(edge.To, nodeMapping, clusterInputMap, placeholderMap, prefix, def.ID)

		if to.IsExternal() {
			// Placeholder redirection: any already-emitted edge sourced
			// from this placeholder gets rewired to the real producer. If
			// none matched, the edge is kept so a parent can rewire it.
			if !redirectPlaceholderEdges(graph.Edges, to.External, from) {
				graph.Edges = append(graph.Edges, ExpandedEdge{From: from, To: to})
			}
		} else {
			graph.Edges = append(graph.Edges, ExpandedEdge{From: from, To: to})
		}
	}

	return &expandBuild{
		graph:          graph,
		nodeMapping:    nodeMapping,
		placeholderMap: placeholderMap,
	}, nil
}

func sortedNodeIDs(nodes map[string]NodeInstance) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func buildPlaceholderMap(prefix []AuthoringStep, clusterID string, inputPorts []InputPortSpec) map[string]string {
	m := make(map[string]string, len(inputPorts))
	for _, input := range inputPorts {
		m[input.MapsTo.Name] = externalKey(prefix, clusterID, input.MapsTo.Name)
	}
	return m
}

// externalKey derives a globally unique placeholder identifier from the
// authoring path, keeping placeholders from sibling clusters distinct
// during recursion.
func externalKey(prefix []AuthoringStep, clusterID, name string) string {
	parts := make([]string, 0, len(prefix)+2)
	for _, step := range prefix {
		parts = append(parts, step.ClusterID+":"+step.NodeID)
	}
	parts = append(parts, clusterID, name)
	return strings.Join(parts, "/")
}

func mergeGraph(target *ExpandedGraph, nested *ExpandedGraph) {
	for id, node := range nested.Nodes {
		target.Nodes[id] = node
	}
	target.Edges = append(target.Edges, nested.Edges...)
}

func resolveOutputEndpoint(
	output OutputRef,
	nodeMapping map[string]string,
	clusterOutputMap map[string]map[string]ExpandedEndpoint,
	prefix []AuthoringStep,
	clusterID string,
) ExpandedEndpoint {
	if runtimeID, ok := nodeMapping[output.NodeID]; ok {
		return NodePort(runtimeID, output.PortName)
	}

	if outputs, ok := clusterOutputMap[output.NodeID]; ok {
		if ep, ok := outputs[output.PortName]; ok {
			return ep
		}
	}

	return ExternalInput(externalKey(prefix, clusterID, output.NodeID))
}

func resolveInputEndpoint(
	input InputRef,
	nodeMapping map[string]string,
	clusterInputMap map[string]map[string]string,
	placeholderMap map[string]string,
	prefix []AuthoringStep,
	clusterID string,
) ExpandedEndpoint {
	if runtimeID, ok := nodeMapping[input.NodeID]; ok {
		return NodePort(runtimeID, input.PortName)
	}

	if inputs, ok := clusterInputMap[input.NodeID]; ok {
		if key, ok := inputs[input.PortName]; ok {
			return ExternalInput(key)
		}
	}

	if key, ok := placeholderMap[input.NodeID]; ok {
		return ExternalInput(key)
	}

	return ExternalInput(externalKey(prefix, clusterID, input.NodeID))
}

func redirectPlaceholderEdges(edges []ExpandedEdge, placeholder string, source ExpandedEndpoint) bool {
	replaced := false
	for i := range edges {
		if edges[i].From.IsExternal() && edges[i].From.External == placeholder {
			edges[i].From = source
			replaced = true
		}
	}
	return replaced
}

// applyLiteralBindings rewrites the nested definition's exposed bindings to
// literals wherever the embedding node binds the exposed parameter
// literally. Exposure is resolved one level at a time; exposure no ancestor
// binds is dropped by resolveParameterBindings.
func applyLiteralBindings(def *ClusterDefinition, bindings map[string]ParameterBinding) *ClusterDefinition {
	updated := *def
	updated.Nodes = make(map[string]NodeInstance, len(def.Nodes))

	for id, node := range def.Nodes {
		rebound := node
		if len(node.ParameterBindings) > 0 {
			rebound.ParameterBindings = make(map[string]ParameterBinding, len(node.ParameterBindings))
			for name, binding := range node.ParameterBindings {
				if binding.Exposed != "" {
					if parent, ok := bindings[binding.Exposed]; ok && parent.Literal != nil {
						binding = ParameterBinding{Literal: parent.Literal}
					}
				}
				rebound.ParameterBindings[name] = binding
			}
		}
		updated.Nodes[id] = rebound
	}

	return &updated
}

func resolveParameterBindings(bindings map[string]ParameterBinding) map[string]value.Param {
	resolved := make(map[string]value.Param)
	for name, binding := range bindings {
		if binding.Literal != nil {
			resolved[name] = *binding.Literal
		}
	}
	return resolved
}

func mapBoundaryOutputs(outputs []OutputPortSpec, mapping map[string]string) []OutputPortSpec {
	mapped := make([]OutputPortSpec, 0, len(outputs))
	for _, output := range outputs {
		nodeID := output.MapsTo.NodeID
		if runtimeID, ok := mapping[nodeID]; ok {
			nodeID = runtimeID
		}
		mapped = append(mapped, OutputPortSpec{
			Name: output.Name,
			MapsTo: OutputRef{
				NodeID:   nodeID,
				PortName: output.MapsTo.PortName,
			},
		})
	}
	return mapped
}
