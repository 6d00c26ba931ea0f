package engine

import (
	"fmt"

	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// Execute evaluates every node in the validator's topological order and
// projects the boundary outputs into a report. The pass has no parallelism
// and no suspension points; trigger state is cloned from the context on
// entry and threaded per node.
func Execute(graph *ValidatedGraph, registries primitive.Registries, ctx *ExecutionContext) (*ExecutionReport, error) {
	nodeOutputs := make(map[string]map[string]value.Value, len(graph.Nodes))
	triggerState := cloneTriggerState(ctx)

	for _, runtimeID := range graph.TopoOrder {
		node, ok := graph.Nodes[runtimeID]
		if !ok {
			panic(fmt.Sprintf("validated node %q missing from graph", runtimeID))
		}

		inputs, err := collectInputs(runtimeID, node.Inputs, graph.Edges, nodeOutputs)
		if err != nil {
			return nil, err
		}

		var outputs map[string]value.Value
		switch node.Kind {
		case primitive.KindSource:
			outputs, err = executeSource(node, registries)
		case primitive.KindCompute:
			outputs, err = executeCompute(node, inputs, registries)
		case primitive.KindTrigger:
			outputs, err = executeTrigger(node, inputs, registries, triggerState)
		case primitive.KindAction:
			outputs, err = executeAction(node, inputs, registries)
		default:
			panic(fmt.Sprintf("validated node %q has unknown kind %q", runtimeID, node.Kind))
		}
		if err != nil {
			return nil, err
		}

		nodeOutputs[runtimeID] = outputs
	}

	outputs := make(map[string]value.Value, len(graph.BoundaryOutputs))
	for _, out := range graph.BoundaryOutputs {
		produced, ok := nodeOutputs[out.MapsTo.NodeID]
		if !ok {
			return nil, ErrMissingOutput{Node: out.MapsTo.NodeID, Output: out.MapsTo.PortName}
		}
		val, ok := produced[out.MapsTo.PortName]
		if !ok {
			return nil, ErrMissingOutput{Node: out.MapsTo.NodeID, Output: out.MapsTo.PortName}
		}
		outputs[out.Name] = val
	}

	return &ExecutionReport{Outputs: outputs}, nil
}

func cloneTriggerState(ctx *ExecutionContext) map[string]*primitive.TriggerState {
	cloned := make(map[string]*primitive.TriggerState)
	if ctx == nil {
		return cloned
	}
	for id, state := range ctx.TriggerState {
		cloned[id] = state.Clone()
	}
	return cloned
}

func collectInputs(
	target string,
	specs []catalog.InputMetadata,
	edges []ValidatedEdge,
	nodeOutputs map[string]map[string]value.Value,
) (map[string]value.Value, error) {
	inputs := make(map[string]value.Value)

	for _, edge := range edges {
		if edge.To.NodeID != target {
			continue
		}
		produced, ok := nodeOutputs[edge.From.NodeID]
		if !ok {
			return nil, ErrMissingOutput{Node: edge.From.NodeID, Output: edge.From.PortName}
		}
		val, ok := produced[edge.From.PortName]
		if !ok {
			return nil, ErrMissingOutput{Node: edge.From.NodeID, Output: edge.From.PortName}
		}
		inputs[edge.To.PortName] = val
	}

	// Defensive: the validator already guarantees required coverage.
	for _, spec := range specs {
		if spec.Required {
			if _, ok := inputs[spec.Name]; !ok {
				return nil, ErrMissingOutput{Node: target, Output: spec.Name}
			}
		}
	}

	return inputs, nil
}

func executeSource(node ValidatedNode, registries primitive.Registries) (map[string]value.Value, error) {
	impl, ok := registries.Sources.Get(node.ImplID)
	if !ok {
		return nil, ErrUnknownPrimitive{ID: node.ImplID, Version: node.Version}
	}

	params, err := projectSourceParams(node)
	if err != nil {
		return nil, err
	}

	return impl.Produce(params), nil
}

func executeCompute(node ValidatedNode, inputs map[string]value.Value, registries primitive.Registries) (map[string]value.Value, error) {
	impl, ok := registries.Computes.Get(node.ImplID)
	if !ok {
		return nil, ErrUnknownPrimitive{ID: node.ImplID, Version: node.Version}
	}

	mappedInputs := make(map[string]value.Value, len(inputs))
	for name, val := range inputs {
		mapped, ok := value.ToComputeValue(val)
		if !ok {
			return nil, ErrTypeConversionFailed{Node: node.RuntimeID, Port: name}
		}
		mappedInputs[name] = mapped
	}

	params := make(map[string]value.Param, len(node.Parameters))
	for name, param := range node.Parameters {
		mapped, ok := value.ToComputeParam(param)
		if !ok {
			return nil, ErrParameterTypeConversionFailed{Node: node.RuntimeID, Parameter: name}
		}
		params[name] = mapped
	}

	// Rolling-window state is not threaded by the current core.
	return impl.Compute(mappedInputs, params, nil), nil
}

func executeTrigger(
	node ValidatedNode,
	inputs map[string]value.Value,
	registries primitive.Registries,
	state map[string]*primitive.TriggerState,
) (map[string]value.Value, error) {
	impl, ok := registries.Triggers.Get(node.ImplID)
	if !ok {
		return nil, ErrUnknownPrimitive{ID: node.ImplID, Version: node.Version}
	}

	mappedInputs := make(map[string]value.Value, len(inputs))
	for name, val := range inputs {
		mapped, ok := value.ToTriggerValue(val)
		if !ok {
			return nil, ErrTypeConversionFailed{Node: node.RuntimeID, Port: name}
		}
		mappedInputs[name] = mapped
	}

	slot, ok := state[node.RuntimeID]
	if !ok {
		slot = primitive.NewTriggerState()
		state[node.RuntimeID] = slot
	}

	return impl.Evaluate(mappedInputs, node.Parameters, slot), nil
}

func executeAction(node ValidatedNode, inputs map[string]value.Value, registries primitive.Registries) (map[string]value.Value, error) {
	impl, ok := registries.Actions.Get(node.ImplID)
	if !ok {
		return nil, ErrUnknownPrimitive{ID: node.ImplID, Version: node.Version}
	}

	mappedInputs := make(map[string]value.Value, len(inputs))
	for name, val := range inputs {
		mapped, ok := value.ToActionValue(val)
		if !ok {
			return nil, ErrTypeConversionFailed{Node: node.RuntimeID, Port: name}
		}
		mappedInputs[name] = mapped
	}

	return impl.Execute(mappedInputs, node.Parameters), nil
}

func projectSourceParams(node ValidatedNode) (map[string]value.Param, error) {
	params := make(map[string]value.Param, len(node.Parameters))
	for name, param := range node.Parameters {
		params[name] = param
	}
	return params, nil
}
