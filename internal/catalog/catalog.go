// Package catalog provides read-only lookup of primitive structural
// metadata keyed by (id, version). The catalog is the single source of
// structural truth consumed by expansion and validation; registries carry
// the implementations separately.
package catalog

import (
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/value"
)

// InputMetadata is the structural projection of a declared input port.
type InputMetadata struct {
	Name     string
	Type     value.ValueType
	Required bool
}

// OutputMetadata is the structural projection of a declared output port.
type OutputMetadata struct {
	Type        value.ValueType
	Cardinality primitive.Cardinality
}

// PrimitiveMetadata is the structural metadata of one primitive version.
type PrimitiveMetadata struct {
	Kind    primitive.PrimitiveKind
	Inputs  []InputMetadata
	Outputs map[string]OutputMetadata
}

type identity struct {
	id      string
	version string
}

// Catalog maps (id, version) to structural metadata. Built once, then
// read-only.
type Catalog struct {
	metadata map[identity]PrimitiveMetadata
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{metadata: make(map[identity]PrimitiveMetadata)}
}

// Add projects a manifest into structural metadata and records it under the
// manifest's identity. Later additions for the same identity overwrite.
func (c *Catalog) Add(m primitive.Manifest) {
	inputs := make([]InputMetadata, 0, len(m.Inputs))
	for _, input := range m.Inputs {
		inputs = append(inputs, InputMetadata{
			Name:     input.Name,
			Type:     input.Type,
			Required: input.Required,
		})
	}

	outputs := make(map[string]OutputMetadata, len(m.Outputs))
	for _, output := range m.Outputs {
		cardinality := primitive.CardinalitySingle
		outputs[output.Name] = OutputMetadata{
			Type:        output.Type,
			Cardinality: cardinality,
		}
	}

	c.metadata[identity{id: m.ID, version: m.Version}] = PrimitiveMetadata{
		Kind:    m.Kind,
		Inputs:  inputs,
		Outputs: outputs,
	}
}

// Get returns the metadata for (id, version).
func (c *Catalog) Get(id, version string) (PrimitiveMetadata, bool) {
	meta, ok := c.metadata[identity{id: id, version: version}]
	return meta, ok
}

// Len reports how many (id, version) entries the catalog holds.
func (c *Catalog) Len() int {
	return len(c.metadata)
}

// FromRegistries builds a catalog from every manifest registered across the
// four kind registries.
func FromRegistries(r primitive.Registries) *Catalog {
	c := New()
	if r.Sources != nil {
		for _, m := range r.Sources.Manifests() {
			c.Add(m)
		}
	}
	if r.Computes != nil {
		for _, m := range r.Computes.Manifests() {
			c.Add(m)
		}
	}
	if r.Triggers != nil {
		for _, m := range r.Triggers.Manifests() {
			c.Add(m)
		}
	}
	if r.Actions != nil {
		for _, m := range r.Actions.Manifests() {
			c.Add(m)
		}
	}
	return c
}
