package cluster

import "fmt"

// ErrEmptyCluster is returned when a definition declares no nodes.
type ErrEmptyCluster struct {
	ID string
}

func (e ErrEmptyCluster) Error() string {
	return fmt.Sprintf("cluster %q has no nodes", e.ID)
}

// ErrMissingCluster is returned when a nested cluster cannot be resolved by
// the loader.
type ErrMissingCluster struct {
	ID      string
	Version string
}

func (e ErrMissingCluster) Error() string {
	return fmt.Sprintf("cluster %q version %q not found", e.ID, e.Version)
}

// ErrDuplicateInputPort is returned when two input ports share a name.
type ErrDuplicateInputPort struct {
	Name string
}

func (e ErrDuplicateInputPort) Error() string {
	return fmt.Sprintf("duplicate input port %q", e.Name)
}

// ErrDuplicateOutputPort is returned when two output ports share a name.
type ErrDuplicateOutputPort struct {
	Name string
}

func (e ErrDuplicateOutputPort) Error() string {
	return fmt.Sprintf("duplicate output port %q", e.Name)
}

// ErrDuplicateParameter is returned when two parameters share a name.
type ErrDuplicateParameter struct {
	Name string
}

func (e ErrDuplicateParameter) Error() string {
	return fmt.Sprintf("duplicate parameter %q", e.Name)
}

// ErrParameterDefaultTypeMismatch is returned when a parameter default does
// not match the declared parameter type.
type ErrParameterDefaultTypeMismatch struct {
	Name     string
	Expected string
	Got      string
}

func (e ErrParameterDefaultTypeMismatch) Error() string {
	return fmt.Sprintf("parameter %q default has type %s, declared %s", e.Name, e.Got, e.Expected)
}

// ErrSignatureInference wraps a signature inference failure surfaced during
// expansion.
type ErrSignatureInference struct {
	Err error
}

func (e ErrSignatureInference) Error() string {
	return fmt.Sprintf("signature inference failed: %v", e.Err)
}

func (e ErrSignatureInference) Unwrap() error {
	return e.Err
}

// ErrDeclaredSignatureInvalid wraps a declared-signature violation surfaced
// during expansion.
type ErrDeclaredSignatureInvalid struct {
	Err error
}

func (e ErrDeclaredSignatureInvalid) Error() string {
	return fmt.Sprintf("declared signature invalid: %v", e.Err)
}

func (e ErrDeclaredSignatureInvalid) Unwrap() error {
	return e.Err
}

// ErrMissingPrimitive is returned by signature inference when a node's
// metadata is absent from the catalog.
type ErrMissingPrimitive struct {
	ID      string
	Version string
}

func (e ErrMissingPrimitive) Error() string {
	return fmt.Sprintf("primitive %q version %q not in catalog", e.ID, e.Version)
}

// ErrMissingNode is returned by signature inference when a boundary output
// references an unknown node.
type ErrMissingNode struct {
	NodeID string
}

func (e ErrMissingNode) Error() string {
	return fmt.Sprintf("boundary output references unknown node %q", e.NodeID)
}

// ErrMissingOutput is returned by signature inference when a boundary output
// references an undeclared output port.
type ErrMissingOutput struct {
	ImplID  string
	Version string
	Output  string
}

func (e ErrMissingOutput) Error() string {
	return fmt.Sprintf("primitive %q version %q has no output %q", e.ImplID, e.Version, e.Output)
}

// ErrWireabilityExceedsInferred is returned when a declared port grants
// wireability the inferred signature denies.
type ErrWireabilityExceedsInferred struct {
	PortName string
}

func (e ErrWireabilityExceedsInferred) Error() string {
	return fmt.Sprintf("declared port %q grants wireability beyond the inferred signature", e.PortName)
}
