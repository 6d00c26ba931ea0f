package cluster

import (
	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// InferSignature classifies an expanded graph's boundary behavior from
// graph structure and catalog metadata alone. Inference must not consult
// runtime state, so the same definition always infers the same signature.
func InferSignature(graph *ExpandedGraph, cat Catalog) (*Signature, error) {
	nodeMeta := make(map[string]catalog.PrimitiveMetadata, len(graph.Nodes))
	hasSideEffects := false

	for nodeID, node := range graph.Nodes {
		meta, ok := cat.Get(node.Implementation.ImplID, node.Implementation.Version)
		if !ok {
			return nil, ErrMissingPrimitive{
				ID:      node.Implementation.ImplID,
				Version: node.Implementation.Version,
			}
		}
		if meta.Kind == primitive.KindAction {
			hasSideEffects = true
		}
		nodeMeta[nodeID] = meta
	}

	inputs := make([]PortSpec, 0, len(graph.BoundaryInputs))
	for _, input := range graph.BoundaryInputs {
		// Boundary input ports receive external values only and are never
		// wireable.
		inputs = append(inputs, PortSpec{
			Name:        input.Name,
			Type:        input.MapsTo.Type,
			Cardinality: primitive.CardinalitySingle,
			Wireable:    false,
		})
	}

	outputs := make([]PortSpec, 0, len(graph.BoundaryOutputs))
	hasWireableOutputs := false
	var wireableOutTypes []value.ValueType

	for _, output := range graph.BoundaryOutputs {
		meta, ok := nodeMeta[output.MapsTo.NodeID]
		if !ok {
			return nil, ErrMissingNode{NodeID: output.MapsTo.NodeID}
		}

		outMeta, ok := meta.Outputs[output.MapsTo.PortName]
		if !ok {
			node := graph.Nodes[output.MapsTo.NodeID]
			return nil, ErrMissingOutput{
				ImplID:  node.Implementation.ImplID,
				Version: node.Implementation.Version,
				Output:  output.MapsTo.PortName,
			}
		}

		wireable := meta.Kind != primitive.KindAction
		if wireable {
			hasWireableOutputs = true
			wireableOutTypes = append(wireableOutTypes, outMeta.Type)
		}

		outputs = append(outputs, PortSpec{
			Name:        output.Name,
			Type:        outMeta.Type,
			Cardinality: outMeta.Cardinality,
			Wireable:    wireable,
		})
	}

	hasWireableEventOut := false
	allDataOut := true
	for _, ty := range wireableOutTypes {
		if ty == value.TypeEvent {
			hasWireableEventOut = true
		}
		switch ty {
		case value.TypeNumber, value.TypeSeries, value.TypeBool, value.TypeString:
		default:
			allDataOut = false
		}
	}

	var kind BoundaryKind
	switch {
	case !hasWireableOutputs:
		kind = ActionLike
	case len(graph.BoundaryInputs) == 0 && allDataOut:
		kind = SourceLike
	case hasWireableEventOut:
		kind = TriggerLike
	default:
		kind = ComputeLike
	}

	isOrigin := len(graph.BoundaryInputs) == 0 && rootsAreSources(graph, nodeMeta)

	return &Signature{
		Kind:           kind,
		Inputs:         inputs,
		Outputs:        outputs,
		HasSideEffects: hasSideEffects,
		IsOrigin:       isOrigin,
	}, nil
}

// ValidateDeclaredSignature enforces that a declared port may restrict
// wireability relative to the inferred signature but never grant it. Ports
// present on only one side are not checked here.
func ValidateDeclaredSignature(declared, inferred *Signature) error {
	for _, declaredPort := range declared.Outputs {
		if inferredPort, ok := findPort(inferred.Outputs, declaredPort.Name); ok {
			if declaredPort.Wireable && !inferredPort.Wireable {
				return ErrWireabilityExceedsInferred{PortName: declaredPort.Name}
			}
		}
	}

	// Inferred inputs are never wireable, so a declared wireable input is
	// always a grant.
	for _, declaredPort := range declared.Inputs {
		if inferredPort, ok := findPort(inferred.Inputs, declaredPort.Name); ok {
			if declaredPort.Wireable && !inferredPort.Wireable {
				return ErrWireabilityExceedsInferred{PortName: declaredPort.Name}
			}
		}
	}

	return nil
}

func findPort(ports []PortSpec, name string) (PortSpec, bool) {
	for _, port := range ports {
		if port.Name == name {
			return port, true
		}
	}
	return PortSpec{}, false
}

func rootsAreSources(graph *ExpandedGraph, meta map[string]catalog.PrimitiveMetadata) bool {
	incoming := make(map[string]struct{})
	for _, edge := range graph.Edges {
		if !edge.From.IsExternal() && !edge.To.IsExternal() {
			incoming[edge.To.NodeID] = struct{}{}
		}
	}

	for nodeID := range graph.Nodes {
		if _, hasIncoming := incoming[nodeID]; hasIncoming {
			continue
		}
		m, ok := meta[nodeID]
		if !ok || m.Kind != primitive.KindSource {
			return false
		}
	}

	return true
}
