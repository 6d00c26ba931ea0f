// Package primitives assembles the core primitive set into registries and
// a catalog.
package primitives

import (
	"github.com/kestrelworks/kestrel/internal/catalog"
	"github.com/kestrelworks/kestrel/internal/primitive"
	"github.com/kestrelworks/kestrel/internal/primitives/action"
	"github.com/kestrelworks/kestrel/internal/primitives/compute"
	"github.com/kestrelworks/kestrel/internal/primitives/source"
	"github.com/kestrelworks/kestrel/internal/primitives/trigger"
)

// CoreRegistries registers every core implementation into fresh registries.
func CoreRegistries() (primitive.Registries, error) {
	sources := primitive.NewSourceRegistry()
	if err := sources.Register(source.NewNumberSource()); err != nil {
		return primitive.Registries{}, err
	}
	if err := sources.Register(source.NewBooleanSource()); err != nil {
		return primitive.Registries{}, err
	}

	computes := primitive.NewComputeRegistry()
	for _, impl := range []primitive.Compute{
		compute.NewConstNumber(),
		compute.NewConstBool(),
		compute.NewAdd(),
		compute.NewSubtract(),
		compute.NewMultiply(),
		compute.NewDivide(),
		compute.NewNegate(),
		compute.NewGt(),
		compute.NewLt(),
		compute.NewEq(),
		compute.NewNeq(),
		compute.NewAnd(),
		compute.NewOr(),
		compute.NewNot(),
		compute.NewSelect(),
	} {
		if err := computes.Register(impl); err != nil {
			return primitive.Registries{}, err
		}
	}

	triggers := primitive.NewTriggerRegistry()
	if err := triggers.Register(trigger.NewEmitIfTrue()); err != nil {
		return primitive.Registries{}, err
	}

	actions := primitive.NewActionRegistry()
	if err := actions.Register(action.NewAckAction()); err != nil {
		return primitive.Registries{}, err
	}
	if err := actions.Register(action.NewAnnotateAction()); err != nil {
		return primitive.Registries{}, err
	}

	return primitive.Registries{
		Sources:  sources,
		Computes: computes,
		Triggers: triggers,
		Actions:  actions,
	}, nil
}

// CoreCatalog builds the structural catalog for the core primitive set.
func CoreCatalog() (*catalog.Catalog, error) {
	registries, err := CoreRegistries()
	if err != nil {
		return nil, err
	}
	return catalog.FromRegistries(registries), nil
}
