package engine

import (
	"fmt"

	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// ErrMissingPrimitive is returned when a node's metadata is absent from the
// catalog.
type ErrMissingPrimitive struct {
	ID      string
	Version string
}

func (e ErrMissingPrimitive) Error() string {
	return fmt.Sprintf("primitive %q version %q not in catalog", e.ID, e.Version)
}

// ErrExternalInputNotAllowed is returned when an edge endpoint is an
// external-input placeholder. The executor operates on closed graphs only.
type ErrExternalInputNotAllowed struct {
	Name string
}

func (e ErrExternalInputNotAllowed) Error() string {
	return fmt.Sprintf("external input %q not allowed in an executable graph", e.Name)
}

// ErrCycleDetected is returned when the graph is not a DAG.
type ErrCycleDetected struct{}

func (e ErrCycleDetected) Error() string {
	return "cycle detected in graph"
}

// ErrInvalidEdgeKind is returned when an edge connects two primitive kinds
// the wiring matrix forbids.
type ErrInvalidEdgeKind struct {
	From primitive.PrimitiveKind
	To   primitive.PrimitiveKind
}

func (e ErrInvalidEdgeKind) Error() string {
	return fmt.Sprintf("edge from %s to %s not allowed", e.From, e.To)
}

// ErrMissingRequiredInput is returned when a required input port has no
// incoming edge.
type ErrMissingRequiredInput struct {
	Node  string
	Input string
}

func (e ErrMissingRequiredInput) Error() string {
	return fmt.Sprintf("node %q required input %q has no incoming edge", e.Node, e.Input)
}

// ErrMissingInputMetadata is returned when an edge targets an undeclared
// input port.
type ErrMissingInputMetadata struct {
	Node  string
	Input string
}

func (e ErrMissingInputMetadata) Error() string {
	return fmt.Sprintf("node %q has no declared input %q", e.Node, e.Input)
}

// ErrMissingOutputMetadata is returned when an edge is sourced from an
// undeclared output port.
type ErrMissingOutputMetadata struct {
	Node   string
	Output string
}

func (e ErrMissingOutputMetadata) Error() string {
	return fmt.Sprintf("node %q has no declared output %q", e.Node, e.Output)
}

// ErrTypeMismatch is returned when an edge's source and target port types
// differ. No implicit coercion exists.
type ErrTypeMismatch struct {
	From     string
	Output   string
	To       string
	Input    string
	Expected value.ValueType
	Got      value.ValueType
}

func (e ErrTypeMismatch) Error() string {
	return fmt.Sprintf("edge %s.%s -> %s.%s: expected %s, got %s",
		e.From, e.Output, e.To, e.Input, e.Expected, e.Got)
}

// ErrActionNotGated is returned when an action node has no incoming
// event-carrying edge from a trigger.
type ErrActionNotGated struct {
	Node string
}

func (e ErrActionNotGated) Error() string {
	return fmt.Sprintf("action %q has no gating trigger edge", e.Node)
}

// ErrUnknownPrimitive is returned at execution time when a registry has no
// implementation for a validated node.
type ErrUnknownPrimitive struct {
	ID      string
	Version string
}

func (e ErrUnknownPrimitive) Error() string {
	return fmt.Sprintf("no implementation registered for %q version %q", e.ID, e.Version)
}

// ErrTypeConversionFailed is returned when a value cannot be projected into
// a primitive kind's value universe.
type ErrTypeConversionFailed struct {
	Node string
	Port string
}

func (e ErrTypeConversionFailed) Error() string {
	return fmt.Sprintf("node %q port %q: value outside the primitive's universe", e.Node, e.Port)
}

// ErrParameterTypeConversionFailed is returned when a parameter literal
// cannot be projected into a primitive kind's parameter universe.
type ErrParameterTypeConversionFailed struct {
	Node      string
	Parameter string
}

func (e ErrParameterTypeConversionFailed) Error() string {
	return fmt.Sprintf("node %q parameter %q: literal outside the primitive's universe", e.Node, e.Parameter)
}

// ErrMissingOutput is returned when a producer did not record an output the
// pass needs.
type ErrMissingOutput struct {
	Node   string
	Output string
}

func (e ErrMissingOutput) Error() string {
	return fmt.Sprintf("node %q produced no output %q", e.Node, e.Output)
}
