package ifc

import (
	"time"

	"github.com/ifcstep/ifcstep/internal/step"
)

// Vec3 is a coordinate triple in model units.
type Vec3 [3]float64

type builderOptions struct {
	name              string
	author            string
	organization      string
	originatingSystem string
	timeStamp         time.Time
	globalID          func() GlobalID
}

type BuilderOption func(*builderOptions)

func WithFileName(name string) BuilderOption {
	return func(o *builderOptions) {
		o.name = name
	}
}

func WithAuthor(author string) BuilderOption {
	return func(o *builderOptions) {
		o.author = author
	}
}

func WithOrganization(organization string) BuilderOption {
	return func(o *builderOptions) {
		o.organization = organization
	}
}

func WithOriginatingSystem(system string) BuilderOption {
	return func(o *builderOptions) {
		o.originatingSystem = system
	}
}

func WithTimeStamp(t time.Time) BuilderOption {
	return func(o *builderOptions) {
		o.timeStamp = t
	}
}

// WithGlobalIDs replaces the random GlobalId source, mostly for stable
// output in tests.
func WithGlobalIDs(next func() GlobalID) BuilderOption {
	return func(o *builderOptions) {
		o.globalID = next
	}
}

// Builder assembles a small IFC4 model: one project with a single spatial
// chain of site, building and storey, and elements placed in the storey.
// Every record it writes is reachable from the project and verifies.
type Builder struct {
	opts  builderOptions
	model *step.Model
	store *step.Store

	up    step.TypedID[Direction]
	east  step.TypedID[Direction]
	world step.TypedID[Axis2Placement3D]

	context   step.TypedID[GeometricRepresentationContext]
	project   step.TypedID[Project]
	site      step.TypedID[Site]
	building  step.TypedID[Building]
	storey    step.TypedID[BuildingStorey]
	placement map[step.ID]step.ID
	contained []step.ID
}

func NewBuilder(options ...BuilderOption) *Builder {
	opts := builderOptions{
		timeStamp: time.Now(),
		globalID:  NewGlobalID,
	}
	for _, option := range options {
		option(&opts)
	}
	model := step.NewModel(step.SchemaIFC4)
	model.Header.Name.Name = step.LabelOf(opts.name)
	model.Header.Name.TimeStamp = step.LabelOf(opts.timeStamp.UTC().Format("2006-01-02T15:04:05"))
	model.Header.Name.Author = step.ListOf(step.LabelOf(opts.author))
	model.Header.Name.Organization = step.ListOf(step.LabelOf(opts.organization))
	model.Header.Name.OriginatingSystem = step.LabelOf(opts.originatingSystem)
	b := &Builder{
		opts:      opts,
		model:     model,
		store:     model.Data,
		placement: map[step.ID]step.ID{},
	}
	b.up = step.InsertNew(b.store, NewDirection(0, 0, 1))
	b.east = step.InsertNew(b.store, NewDirection(1, 0, 0))
	return b
}

func (b *Builder) root(name string) Root {
	r := Root{GlobalID: b.opts.globalID()}
	if name != "" {
		r.Name = step.Custom(step.LabelOf(name))
	}
	return r
}

func (b *Builder) axis(origin Vec3) step.IDOr[Axis2Placement3D] {
	return step.Inline(&Axis2Placement3D{},
		step.Link(func(a *Axis2Placement3D) *step.TypedID[CartesianPoint] { return &a.Location },
			step.Inline(NewPoint(origin[:]...))),
		step.LinkOptional(func(a *Axis2Placement3D) *step.Optional[step.TypedID[Direction]] { return &a.Axis },
			step.Existing(b.up)),
		step.LinkOptional(func(a *Axis2Placement3D) *step.Optional[step.TypedID[Direction]] { return &a.RefDirection },
			step.Existing(b.east)))
}

// place writes a local placement at origin relative to the placement of
// parent, or to the world when parent is zero.
func (b *Builder) place(parent step.ID, origin Vec3) step.Optional[step.ID] {
	local := &LocalPlacement{PlacementRelTo: step.Omitted[step.ID]()}
	if relTo, ok := b.placement[parent]; ok {
		local.PlacementRelTo = step.Custom(relTo)
	}
	placement := step.Inline(local,
		step.Link(func(l *LocalPlacement) *step.TypedID[Axis2Placement3D] { return &l.RelativePlacement },
			b.axis(origin)))
	return step.Custom(placement.OrInsert(b.store).ID())
}

func (b *Builder) remember(id step.ID, placement step.Optional[step.ID]) {
	if v, ok := placement.Value(); ok {
		b.placement[id] = v
	}
}

func (b *Builder) aggregate(parent step.ID, child step.ID) {
	step.InsertNew(b.store, &RelAggregates{
		Root:           b.root(""),
		RelatingObject: parent,
		RelatedObjects: step.ListOf(child),
	})
}

// Context returns the 3D model context, creating it on first use.
func (b *Builder) Context() step.TypedID[GeometricRepresentationContext] {
	if b.context != 0 {
		return b.context
	}
	if b.world == 0 {
		axis := b.axis(Vec3{})
		b.world = axis.OrInsert(b.store)
	}
	b.context = step.InsertNew(b.store, &GeometricRepresentationContext{
		ContextType:              step.Custom(step.LabelOf("Model")),
		CoordinateSpaceDimension: step.Custom(DimensionCount(3)),
		Precision:                step.Custom(step.RealOf(1e-5)),
		WorldCoordinateSystem:    b.world,
		TrueNorth:                step.Omitted[step.TypedID[Direction]](),
	})
	return b.context
}

func (b *Builder) Project(name string) step.TypedID[Project] {
	ctx := b.Context()
	b.project = step.InsertNew(b.store, &Project{
		Object:                 Object{Root: b.root(name)},
		RepresentationContexts: step.Custom(step.ListOf(ctx.ID())),
	})
	return b.project
}

func (b *Builder) Site(name string) step.TypedID[Site] {
	if b.project == 0 {
		b.Project(name)
	}
	site := &Site{}
	site.Root = b.root(name)
	site.CompositionType = step.Custom(CompositionElement)
	site.ObjectPlacement = b.place(0, Vec3{})
	b.site = step.InsertNew(b.store, site)
	b.remember(b.site.ID(), site.ObjectPlacement)
	b.aggregate(b.project.ID(), b.site.ID())
	return b.site
}

func (b *Builder) Building(name string) step.TypedID[Building] {
	if b.site == 0 {
		b.Site(name)
	}
	building := &Building{}
	building.Root = b.root(name)
	building.CompositionType = step.Custom(CompositionElement)
	building.ObjectPlacement = b.place(b.site.ID(), Vec3{})
	b.building = step.InsertNew(b.store, building)
	b.remember(b.building.ID(), building.ObjectPlacement)
	b.aggregate(b.site.ID(), b.building.ID())
	return b.building
}

// Storey adds a storey to the building; elements added afterwards are
// contained in it.
func (b *Builder) Storey(name string, elevation float64) step.TypedID[BuildingStorey] {
	if b.building == 0 {
		b.Building(name)
	}
	b.flush()
	storey := &BuildingStorey{}
	storey.Root = b.root(name)
	storey.CompositionType = step.Custom(CompositionElement)
	storey.ObjectPlacement = b.place(b.building.ID(), Vec3{0, 0, elevation})
	storey.Elevation = step.Custom(step.RealOf(elevation))
	b.storey = step.InsertNew(b.store, storey)
	b.remember(b.storey.ID(), storey.ObjectPlacement)
	b.aggregate(b.building.ID(), b.storey.ID())
	return b.storey
}

func (b *Builder) element(name string, origin Vec3) Element {
	if b.storey == 0 {
		b.Storey(name, 0)
	}
	el := Element{}
	el.Root = b.root(name)
	el.ObjectPlacement = b.place(b.storey.ID(), origin)
	return el
}

func (b *Builder) contain(id step.ID, el *Element) {
	b.remember(id, el.ObjectPlacement)
	b.contained = append(b.contained, id)
}

func (b *Builder) Wall(name string, origin Vec3) step.TypedID[Wall] {
	wall := &Wall{Element: b.element(name, origin), PredefinedType: step.Custom(WallTypeStandard)}
	id := step.InsertNew(b.store, wall)
	b.contain(id.ID(), &wall.Element)
	return id
}

func (b *Builder) Slab(name string, origin Vec3) step.TypedID[Slab] {
	slab := &Slab{Element: b.element(name, origin), PredefinedType: step.Custom(SlabTypeFloor)}
	id := step.InsertNew(b.store, slab)
	b.contain(id.ID(), &slab.Element)
	return id
}

// Opening cuts an opening into host. The opening is placed relative to the
// host and is not contained in the storey itself.
func (b *Builder) Opening(host step.ID, name string, origin Vec3) step.TypedID[OpeningElement] {
	opening := &OpeningElement{PredefinedType: step.Custom(OpeningTypeOpening)}
	opening.Root = b.root(name)
	opening.ObjectPlacement = b.place(host, origin)
	id := step.InsertNew(b.store, opening)
	b.remember(id.ID(), opening.ObjectPlacement)
	step.InsertNew(b.store, &RelVoidsElement{
		Root:                    b.root(""),
		RelatingBuildingElement: host,
		RelatedOpeningElement:   id,
	})
	return id
}

func (b *Builder) Window(name string, origin Vec3, height, width float64) step.TypedID[Window] {
	window := &Window{
		Element:        b.element(name, origin),
		OverallHeight:  step.Custom(step.RealOf(height)),
		OverallWidth:   step.Custom(step.RealOf(width)),
		PredefinedType: step.Custom(WindowTypeWindow),
	}
	id := step.InsertNew(b.store, window)
	b.contain(id.ID(), &window.Element)
	return id
}

// flush ties the elements added since the last storey to that storey.
func (b *Builder) flush() {
	if len(b.contained) == 0 {
		return
	}
	step.InsertNew(b.store, &RelContainedInSpatialStructure{
		Root:              b.root(""),
		RelatedElements:   step.ListOf(b.contained...),
		RelatingStructure: b.storey.ID(),
	})
	b.contained = nil
}

// Build finishes the model. The builder must not be used afterwards.
func (b *Builder) Build() *step.Model {
	if b.project == 0 {
		b.Project(b.opts.name)
	}
	b.flush()
	return b.model
}
