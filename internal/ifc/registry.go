package ifc

import (
	"context"

	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/step"
)

// Registry returns a registry with every bound IFC entity. Keywords it does
// not know are kept as generic records by the parser.
func Registry() step.RegistryMap {
	r := step.RegistryMap{}
	step.Register[Project](r)
	step.Register[Site](r)
	step.Register[Building](r)
	step.Register[BuildingStorey](r)
	step.Register[Wall](r)
	step.Register[Slab](r)
	step.Register[OpeningElement](r)
	step.Register[Window](r)
	step.Register[WallType](r)
	step.Register[RelVoidsElement](r)
	step.Register[RelAggregates](r)
	step.Register[RelContainedInSpatialStructure](r)
	step.Register[RelDefinesByType](r)
	step.Register[CartesianPoint](r)
	step.Register[Direction](r)
	step.Register[Axis2Placement3D](r)
	step.Register[LocalPlacement](r)
	step.Register[GeometricRepresentationContext](r)
	return r
}

// Parse reads an IFC file held in memory.
func Parse(ctx context.Context, text string, options ...step.Option) (*step.Model, error) {
	return step.Parse(ctx, text, Registry(), options...)
}

func ParseFile(ctx context.Context, f idl.File, options ...step.Option) (*step.Model, error) {
	return step.ParseFile(ctx, f, Registry(), options...)
}

// ParseEntity reads a single record body such as "IFCDIRECTION((0.,0.,1.));".
func ParseEntity(ctx context.Context, text string) (step.Entity, error) {
	return step.ParseEntity(ctx, text, Registry())
}
