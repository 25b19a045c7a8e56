package ifc

import "github.com/ifcstep/ifcstep/internal/step"

type CartesianPoint struct {
	Coordinates step.List[step.Real]
}

// NewPoint returns a point with the given coordinates.
func NewPoint(coordinates ...float64) *CartesianPoint {
	return &CartesianPoint{Coordinates: step.Reals(coordinates...)}
}

func (p *CartesianPoint) Keyword() string {
	return KeywordCartesianPoint
}

func (p *CartesianPoint) DecodeStep(d *step.Decoder) {
	p.Coordinates = step.DecodeList(d, step.DecodeReal)
}

func (p *CartesianPoint) EncodeStep(e *step.Encoder) {
	p.Coordinates.EncodeStep(e)
}

type Direction struct {
	DirectionRatios step.List[step.Real]
}

func NewDirection(ratios ...float64) *Direction {
	return &Direction{DirectionRatios: step.Reals(ratios...)}
}

func (dir *Direction) Keyword() string {
	return KeywordDirection
}

func (dir *Direction) DecodeStep(d *step.Decoder) {
	dir.DirectionRatios = step.DecodeList(d, step.DecodeReal)
}

func (dir *Direction) EncodeStep(e *step.Encoder) {
	dir.DirectionRatios.EncodeStep(e)
}

// Axis2Placement3D is a location with optional axis and reference
// directions.
type Axis2Placement3D struct {
	Location     step.TypedID[CartesianPoint]
	Axis         step.Optional[step.TypedID[Direction]]
	RefDirection step.Optional[step.TypedID[Direction]]
}

func (a *Axis2Placement3D) Keyword() string {
	return KeywordAxis2Placement3D
}

func (a *Axis2Placement3D) DecodeStep(d *step.Decoder) {
	a.Location = step.DecodeTypedID[CartesianPoint](d)
	a.Axis = step.DecodeOptional(d, step.DecodeTypedID[Direction])
	a.RefDirection = step.DecodeOptional(d, step.DecodeTypedID[Direction])
}

func (a *Axis2Placement3D) EncodeStep(e *step.Encoder) {
	a.Location.EncodeStep(e)
	a.Axis.EncodeStep(e)
	a.RefDirection.EncodeStep(e)
}

func (a *Axis2Placement3D) VerifyStep(v *step.Verifier) {
	step.VerifyRef(v, "Location", a.Location, acceptPoint)
	step.VerifyOptional(v, "Axis", a.Axis, acceptDirection)
	step.VerifyOptional(v, "RefDirection", a.RefDirection, acceptDirection)
}

// LocalPlacement places a product relative to another placement, or to the
// world coordinate system when PlacementRelTo is omitted.
type LocalPlacement struct {
	PlacementRelTo    step.Optional[step.ID]
	RelativePlacement step.TypedID[Axis2Placement3D]
}

func (l *LocalPlacement) Keyword() string {
	return KeywordLocalPlacement
}

func (l *LocalPlacement) DecodeStep(d *step.Decoder) {
	l.PlacementRelTo = step.DecodeOptional(d, step.DecodeID)
	l.RelativePlacement = step.DecodeTypedID[Axis2Placement3D](d)
}

func (l *LocalPlacement) EncodeStep(e *step.Encoder) {
	l.PlacementRelTo.EncodeStep(e)
	l.RelativePlacement.EncodeStep(e)
}

func (l *LocalPlacement) VerifyStep(v *step.Verifier) {
	step.VerifyOptional(v, "PlacementRelTo", l.PlacementRelTo, acceptPlacement)
	step.VerifyRef(v, "RelativePlacement", l.RelativePlacement, acceptAxis3D)
}

type GeometricRepresentationContext struct {
	ContextIdentifier        step.Optional[step.Label]
	ContextType              step.Optional[step.Label]
	CoordinateSpaceDimension step.Optional[DimensionCount]
	Precision                step.Optional[step.Real]
	WorldCoordinateSystem    step.TypedID[Axis2Placement3D]
	TrueNorth                step.Optional[step.TypedID[Direction]]
}

func (c *GeometricRepresentationContext) Keyword() string {
	return KeywordGeometricRepresentationContext
}

func (c *GeometricRepresentationContext) DecodeStep(d *step.Decoder) {
	c.ContextIdentifier = step.DecodeOptional(d, step.DecodeLabel)
	c.ContextType = step.DecodeOptional(d, step.DecodeLabel)
	c.CoordinateSpaceDimension = DecodeOptionalDimensionCount(d)
	c.Precision = step.DecodeOptional(d, step.DecodeReal)
	c.WorldCoordinateSystem = step.DecodeTypedID[Axis2Placement3D](d)
	c.TrueNorth = step.DecodeOptional(d, step.DecodeTypedID[Direction])
}

func (c *GeometricRepresentationContext) EncodeStep(e *step.Encoder) {
	c.ContextIdentifier.EncodeStep(e)
	c.ContextType.EncodeStep(e)
	c.CoordinateSpaceDimension.EncodeStep(e)
	c.Precision.EncodeStep(e)
	c.WorldCoordinateSystem.EncodeStep(e)
	c.TrueNorth.EncodeStep(e)
}

func (c *GeometricRepresentationContext) VerifyStep(v *step.Verifier) {
	step.VerifyRef(v, "WorldCoordinateSystem", c.WorldCoordinateSystem, acceptAxis3D)
	step.VerifyOptional(v, "TrueNorth", c.TrueNorth, acceptDirection)
}
