package primitive

import (
	"sync"

	"github.com/kestrelworks/kestrel/internal/value"
)

// SourceRegistry stores source implementations keyed by id. Registration
// enforces the source manifest invariants; the registry is read-only after
// build.
type SourceRegistry struct {
	mu         sync.RWMutex
	primitives map[string]Source
}

// NewSourceRegistry returns an empty registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{primitives: make(map[string]Source)}
}

// ValidateSourceManifest checks the kind-specific rules for sources.
func ValidateSourceManifest(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind != KindSource {
		return ErrWrongKind{Expected: KindSource, Got: m.Kind}
	}
	if len(m.Inputs) != 0 {
		return ErrInputsNotAllowed{ID: m.ID}
	}
	if m.SideEffects {
		return ErrSideEffectsNotAllowed{ID: m.ID}
	}
	if !m.Execution.Deterministic {
		return ErrNonDeterministicExecution{ID: m.ID}
	}
	if m.Execution.Cadence != CadenceContinuous {
		return ErrInvalidCadence{ID: m.ID, Got: m.Execution.Cadence}
	}
	if m.State.Allowed {
		return ErrStateNotAllowed{ID: m.ID}
	}
	if len(m.Outputs) == 0 {
		return ErrOutputsRequired{ID: m.ID}
	}
	return nil
}

// Register validates the implementation's manifest and inserts it.
func (r *SourceRegistry) Register(impl Source) error {
	manifest := impl.Manifest()
	if err := ValidateSourceManifest(manifest); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.primitives[manifest.ID]; exists {
		return ErrDuplicateID{ID: manifest.ID}
	}
	r.primitives[manifest.ID] = impl
	return nil
}

// Get retrieves an implementation by id.
func (r *SourceRegistry) Get(id string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.primitives[id]
	return impl, ok
}

// Manifests returns the manifests of all registered implementations.
func (r *SourceRegistry) Manifests() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	manifests := make([]Manifest, 0, len(r.primitives))
	for _, impl := range r.primitives {
		manifests = append(manifests, impl.Manifest())
	}
	return manifests
}

// ComputeRegistry stores compute implementations keyed by id.
type ComputeRegistry struct {
	mu         sync.RWMutex
	primitives map[string]Compute
}

// NewComputeRegistry returns an empty registry.
func NewComputeRegistry() *ComputeRegistry {
	return &ComputeRegistry{primitives: make(map[string]Compute)}
}

// ValidateComputeManifest checks the kind-specific rules for computes.
func ValidateComputeManifest(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind != KindCompute {
		return ErrWrongKind{Expected: KindCompute, Got: m.Kind}
	}
	if m.SideEffects {
		return ErrSideEffectsNotAllowed{ID: m.ID}
	}
	if !m.Execution.Deterministic {
		return ErrNonDeterministicExecution{ID: m.ID}
	}
	if len(m.Inputs) == 0 {
		return ErrNoInputsDeclared{ID: m.ID}
	}
	return nil
}

// Register validates the implementation's manifest and inserts it.
func (r *ComputeRegistry) Register(impl Compute) error {
	manifest := impl.Manifest()
	if err := ValidateComputeManifest(manifest); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.primitives[manifest.ID]; exists {
		return ErrDuplicateID{ID: manifest.ID}
	}
	r.primitives[manifest.ID] = impl
	return nil
}

// Get retrieves an implementation by id.
func (r *ComputeRegistry) Get(id string) (Compute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.primitives[id]
	return impl, ok
}

// Manifests returns the manifests of all registered implementations.
func (r *ComputeRegistry) Manifests() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	manifests := make([]Manifest, 0, len(r.primitives))
	for _, impl := range r.primitives {
		manifests = append(manifests, impl.Manifest())
	}
	return manifests
}

// TriggerRegistry stores trigger implementations keyed by id.
type TriggerRegistry struct {
	mu         sync.RWMutex
	primitives map[string]Trigger
}

// NewTriggerRegistry returns an empty registry.
func NewTriggerRegistry() *TriggerRegistry {
	return &TriggerRegistry{primitives: make(map[string]Trigger)}
}

// ValidateTriggerManifest checks the kind-specific rules for triggers.
func ValidateTriggerManifest(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind != KindTrigger {
		return ErrWrongKind{Expected: KindTrigger, Got: m.Kind}
	}
	if m.SideEffects {
		return ErrSideEffectsNotAllowed{ID: m.ID}
	}
	if !m.Execution.Deterministic {
		return ErrNonDeterministicExecution{ID: m.ID}
	}
	if m.State.Allowed {
		return ErrStatefulTriggerNotAllowed{ID: m.ID}
	}
	if len(m.Outputs) != 1 {
		return ErrInvalidOutputType{ID: m.ID, Output: "", Reason: "exactly one event output required"}
	}
	if m.Outputs[0].Type != value.TypeEvent {
		return ErrInvalidOutputType{
			ID:     m.ID,
			Output: m.Outputs[0].Name,
			Reason: "output must carry an event",
		}
	}
	return nil
}

// Register validates the implementation's manifest and inserts it.
func (r *TriggerRegistry) Register(impl Trigger) error {
	manifest := impl.Manifest()
	if err := ValidateTriggerManifest(manifest); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.primitives[manifest.ID]; exists {
		return ErrDuplicateID{ID: manifest.ID}
	}
	r.primitives[manifest.ID] = impl
	return nil
}

// Get retrieves an implementation by id.
func (r *TriggerRegistry) Get(id string) (Trigger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.primitives[id]
	return impl, ok
}

// Manifests returns the manifests of all registered implementations.
func (r *TriggerRegistry) Manifests() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	manifests := make([]Manifest, 0, len(r.primitives))
	for _, impl := range r.primitives {
		manifests = append(manifests, impl.Manifest())
	}
	return manifests
}

// ActionRegistry stores action implementations keyed by id.
type ActionRegistry struct {
	mu         sync.RWMutex
	primitives map[string]Action
}

// NewActionRegistry returns an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{primitives: make(map[string]Action)}
}

// ValidateActionManifest checks the kind-specific rules for actions.
func ValidateActionManifest(m Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind != KindAction {
		return ErrWrongKind{Expected: KindAction, Got: m.Kind}
	}
	if !m.SideEffects {
		return ErrSideEffectsRequired{ID: m.ID}
	}
	if m.Execution.Retryable {
		return ErrRetryNotAllowed{ID: m.ID}
	}
	if !m.Execution.Deterministic {
		return ErrNonDeterministicExecution{ID: m.ID}
	}
	if m.State.Allowed {
		return ErrStateNotAllowed{ID: m.ID}
	}

	hasEventInput := false
	for _, input := range m.Inputs {
		if input.Type == value.TypeEvent {
			hasEventInput = true
			break
		}
	}
	if !hasEventInput {
		return ErrEventInputRequired{ID: m.ID}
	}

	if len(m.Outputs) != 1 {
		return ErrInvalidOutputType{ID: m.ID, Output: "", Reason: "exactly one outcome output required"}
	}
	if m.Outputs[0].Name != "outcome" || m.Outputs[0].Type != value.TypeEvent {
		return ErrInvalidOutputType{
			ID:     m.ID,
			Output: m.Outputs[0].Name,
			Reason: "output must be named outcome and carry an event",
		}
	}
	return nil
}

// Register validates the implementation's manifest and inserts it.
func (r *ActionRegistry) Register(impl Action) error {
	manifest := impl.Manifest()
	if err := ValidateActionManifest(manifest); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.primitives[manifest.ID]; exists {
		return ErrDuplicateID{ID: manifest.ID}
	}
	r.primitives[manifest.ID] = impl
	return nil
}

// Get retrieves an implementation by id.
func (r *ActionRegistry) Get(id string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.primitives[id]
	return impl, ok
}

// Manifests returns the manifests of all registered implementations.
func (r *ActionRegistry) Manifests() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	manifests := make([]Manifest, 0, len(r.primitives))
	for _, impl := range r.primitives {
		manifests = append(manifests, impl.Manifest())
	}
	return manifests
}

// Registries bundles the four kind registries for the executor, which
// borrows them immutably for the duration of a pass.
type Registries struct {
	Sources  *SourceRegistry
	Computes *ComputeRegistry
	Triggers *TriggerRegistry
	Actions  *ActionRegistry
}
