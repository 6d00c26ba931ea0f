package adapter

import (
	"sync"
	"time"

	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/engine"
	"github.com/kestrelworks/kestrel/internal/primitive"
)

// RuntimeInvoker is the contract the supervisor drives. A nil deadline
// means unbounded; a zero deadline is an immediate abort signal.
type RuntimeInvoker interface {
	Run(graphID GraphID, eventID EventID, ctx *engine.ExecutionContext, deadline *time.Duration) RunTermination
}

// RuntimeHandle binds an expanded graph, its catalog, and the registries
// into an invoker that runs the real engine per event.
type RuntimeHandle struct {
	graph      *cluster.ExpandedGraph
	catalog    cluster.Catalog
	registries primitive.Registries
}

// NewRuntimeHandle builds a handle over a prepared graph.
func NewRuntimeHandle(graph *cluster.ExpandedGraph, cat cluster.Catalog, registries primitive.Registries) *RuntimeHandle {
	return &RuntimeHandle{graph: graph, catalog: cat, registries: registries}
}

// Run validates and executes the bound graph, mapping engine results onto
// run terminations.
func (h *RuntimeHandle) Run(graphID GraphID, eventID EventID, ctx *engine.ExecutionContext, deadline *time.Duration) RunTermination {
	_ = graphID
	_ = eventID

	if deadline != nil && *deadline == 0 {
		return Aborted()
	}

	validated, err := engine.Validate(h.graph, h.catalog)
	if err != nil {
		return Failed(ErrValidationFailed)
	}

	if ctx == nil {
		ctx = engine.NewExecutionContext()
	}
	if _, err := engine.Execute(validated, h.registries, ctx); err != nil {
		return Failed(ErrRuntimeError)
	}

	return Completed()
}

// FaultRuntimeHandle is a scriptable invoker for supervisor and replay
// tests. Each event id may carry a queue of terminations consumed in
// order; exhausted or unscripted events yield the default termination.
// Copies share the underlying script state.
type FaultRuntimeHandle struct {
	state *faultState
}

type faultState struct {
	mu          sync.Mutex
	fallback    RunTermination
	outcomes    map[EventID][]RunTermination
	invocations []EventID
}

// NewFaultRuntimeHandle builds a handle with a default termination.
func NewFaultRuntimeHandle(fallback RunTermination) FaultRuntimeHandle {
	return FaultRuntimeHandle{state: &faultState{
		fallback: fallback,
		outcomes: make(map[EventID][]RunTermination),
	}}
}

// PushOutcomes scripts the termination sequence for one event id.
func (h FaultRuntimeHandle) PushOutcomes(id EventID, outcomes []RunTermination) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.outcomes[id] = append(h.state.outcomes[id], outcomes...)
}

// Invocations returns the event ids observed so far, in call order.
func (h FaultRuntimeHandle) Invocations() []EventID {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return append([]EventID(nil), h.state.invocations...)
}

// Run pops the next scripted termination for the event, honoring the zero
// deadline contract first.
func (h FaultRuntimeHandle) Run(graphID GraphID, eventID EventID, ctx *engine.ExecutionContext, deadline *time.Duration) RunTermination {
	_ = graphID
	_ = ctx

	if deadline != nil && *deadline == 0 {
		return Aborted()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.invocations = append(h.state.invocations, eventID)

	queue := h.state.outcomes[eventID]
	if len(queue) == 0 {
		return h.state.fallback
	}
	next := queue[0]
	h.state.outcomes[eventID] = queue[1:]
	return next
}
