package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreRegistriesBuild(t *testing.T) {
	registries, err := CoreRegistries()
	require.NoError(t, err)

	for _, id := range []string{"number_source", "boolean_source"} {
		_, ok := registries.Sources.Get(id)
		assert.True(t, ok, id)
	}

	for _, id := range []string{
		"const_number", "const_bool", "add", "subtract", "multiply", "divide",
		"negate", "gt", "lt", "eq", "neq", "and", "or", "not", "select",
	} {
		_, ok := registries.Computes.Get(id)
		assert.True(t, ok, id)
	}

	_, ok := registries.Triggers.Get("emit_if_true")
	assert.True(t, ok)

	for _, id := range []string{"ack_action", "annotate_action"} {
		_, ok := registries.Actions.Get(id)
		assert.True(t, ok, id)
	}
}

// The catalog is built from the same manifests the registries validated, so
// every registered id must resolve structurally.
func TestCoreCatalogAgreesWithRegistries(t *testing.T) {
	registries, err := CoreRegistries()
	require.NoError(t, err)
	cat, err := CoreCatalog()
	require.NoError(t, err)

	total := 0
	for _, m := range registries.Sources.Manifests() {
		_, ok := cat.Get(m.ID, m.Version)
		assert.True(t, ok, m.ID)
		total++
	}
	for _, m := range registries.Computes.Manifests() {
		_, ok := cat.Get(m.ID, m.Version)
		assert.True(t, ok, m.ID)
		total++
	}
	for _, m := range registries.Triggers.Manifests() {
		_, ok := cat.Get(m.ID, m.Version)
		assert.True(t, ok, m.ID)
		total++
	}
	for _, m := range registries.Actions.Manifests() {
		_, ok := cat.Get(m.ID, m.Version)
		assert.True(t, ok, m.ID)
		total++
	}

	assert.Equal(t, total, cat.Len())
}
