package engine

import (
	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/primitive"
)

// Run validates an expanded graph and executes it in one call. It is the
// canonical entry point for callers holding an expanded graph.
func Run(
	expanded *cluster.ExpandedGraph,
	cat cluster.Catalog,
	registries primitive.Registries,
	ctx *ExecutionContext,
) (*ExecutionReport, error) {
	validated, err := Validate(expanded, cat)
	if err != nil {
		return nil, err
	}
	return Execute(validated, registries, ctx)
}
