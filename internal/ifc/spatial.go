package ifc

import "github.com/ifcstep/ifcstep/internal/step"

// Project is the root of the spatial decomposition and holds the
// representation contexts and units of the model.
type Project struct {
	Object
	LongName               step.Optional[step.Label]
	Phase                  step.Optional[step.Label]
	RepresentationContexts step.Optional[step.List[step.ID]]
	UnitsInContext         step.Optional[step.ID]
}

func (p *Project) Keyword() string {
	return KeywordProject
}

func (p *Project) DecodeStep(d *step.Decoder) {
	p.Object.DecodeStep(d)
	p.LongName = step.DecodeOptional(d, step.DecodeLabel)
	p.Phase = step.DecodeOptional(d, step.DecodeLabel)
	p.RepresentationContexts = step.DecodeOptional(d, step.ListDecoder(step.DecodeID))
	p.UnitsInContext = step.DecodeOptional(d, step.DecodeID)
}

func (p *Project) EncodeStep(e *step.Encoder) {
	p.Object.EncodeStep(e)
	p.LongName.EncodeStep(e)
	p.Phase.EncodeStep(e)
	p.RepresentationContexts.EncodeStep(e)
	p.UnitsInContext.EncodeStep(e)
}

func (p *Project) VerifyStep(v *step.Verifier) {
	p.Root.VerifyStep(v)
	step.VerifyOptionalList(v, "RepresentationContexts", p.RepresentationContexts, acceptContext)
	step.VerifyOptional(v, "UnitsInContext", p.UnitsInContext, acceptUnits)
}

type Site struct {
	SpatialStructureElement
	RefLatitude     step.Optional[step.List[step.Integer]]
	RefLongitude    step.Optional[step.List[step.Integer]]
	RefElevation    step.Optional[step.Real]
	LandTitleNumber step.Optional[step.Label]
	SiteAddress     step.Optional[step.ID]
}

func (s *Site) Keyword() string {
	return KeywordSite
}

func (s *Site) DecodeStep(d *step.Decoder) {
	s.SpatialStructureElement.DecodeStep(d)
	s.RefLatitude = step.DecodeOptional(d, step.ListDecoder(step.DecodeInteger))
	s.RefLongitude = step.DecodeOptional(d, step.ListDecoder(step.DecodeInteger))
	s.RefElevation = step.DecodeOptional(d, step.DecodeReal)
	s.LandTitleNumber = step.DecodeOptional(d, step.DecodeLabel)
	s.SiteAddress = step.DecodeOptional(d, step.DecodeID)
}

func (s *Site) EncodeStep(e *step.Encoder) {
	s.SpatialStructureElement.EncodeStep(e)
	s.RefLatitude.EncodeStep(e)
	s.RefLongitude.EncodeStep(e)
	s.RefElevation.EncodeStep(e)
	s.LandTitleNumber.EncodeStep(e)
	s.SiteAddress.EncodeStep(e)
}

func (s *Site) VerifyStep(v *step.Verifier) {
	s.Product.VerifyStep(v)
	step.VerifyOptional(v, "SiteAddress", s.SiteAddress, acceptAddress)
}

type Building struct {
	SpatialStructureElement
	ElevationOfRefHeight step.Optional[step.Real]
	ElevationOfTerrain   step.Optional[step.Real]
	BuildingAddress      step.Optional[step.ID]
}

func (b *Building) Keyword() string {
	return KeywordBuilding
}

func (b *Building) DecodeStep(d *step.Decoder) {
	b.SpatialStructureElement.DecodeStep(d)
	b.ElevationOfRefHeight = step.DecodeOptional(d, step.DecodeReal)
	b.ElevationOfTerrain = step.DecodeOptional(d, step.DecodeReal)
	b.BuildingAddress = step.DecodeOptional(d, step.DecodeID)
}

func (b *Building) EncodeStep(e *step.Encoder) {
	b.SpatialStructureElement.EncodeStep(e)
	b.ElevationOfRefHeight.EncodeStep(e)
	b.ElevationOfTerrain.EncodeStep(e)
	b.BuildingAddress.EncodeStep(e)
}

func (b *Building) VerifyStep(v *step.Verifier) {
	b.Product.VerifyStep(v)
	step.VerifyOptional(v, "BuildingAddress", b.BuildingAddress, acceptAddress)
}

type BuildingStorey struct {
	SpatialStructureElement
	Elevation step.Optional[step.Real]
}

func (s *BuildingStorey) Keyword() string {
	return KeywordBuildingStorey
}

func (s *BuildingStorey) DecodeStep(d *step.Decoder) {
	s.SpatialStructureElement.DecodeStep(d)
	s.Elevation = step.DecodeOptional(d, step.DecodeReal)
}

func (s *BuildingStorey) EncodeStep(e *step.Encoder) {
	s.SpatialStructureElement.EncodeStep(e)
	s.Elevation.EncodeStep(e)
}
