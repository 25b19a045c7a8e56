package ifc

import "github.com/ifcstep/ifcstep/internal/step"

// Root holds the attributes every rooted entity starts with. Subtypes embed
// it and decode it before their own attributes.
type Root struct {
	GlobalID     GlobalID
	OwnerHistory step.Optional[step.ID]
	Name         step.Optional[step.Label]
	Description  step.Optional[step.Label]
}

func (r *Root) DecodeStep(d *step.Decoder) {
	r.GlobalID = DecodeGlobalID(d)
	r.OwnerHistory = step.DecodeOptional(d, step.DecodeID)
	r.Name = step.DecodeOptional(d, step.DecodeLabel)
	r.Description = step.DecodeOptional(d, step.DecodeLabel)
}

func (r *Root) EncodeStep(e *step.Encoder) {
	r.GlobalID.EncodeStep(e)
	r.OwnerHistory.EncodeStep(e)
	r.Name.EncodeStep(e)
	r.Description.EncodeStep(e)
}

func (r *Root) VerifyStep(v *step.Verifier) {
	step.VerifyOptional(v, "OwnerHistory", r.OwnerHistory, acceptOwnerHistory)
}

type Object struct {
	Root
	ObjectType step.Optional[step.Label]
}

func (o *Object) DecodeStep(d *step.Decoder) {
	o.Root.DecodeStep(d)
	o.ObjectType = step.DecodeOptional(d, step.DecodeLabel)
}

func (o *Object) EncodeStep(e *step.Encoder) {
	o.Root.EncodeStep(e)
	o.ObjectType.EncodeStep(e)
}

// Product is an object with a place in space and an optional shape.
type Product struct {
	Object
	ObjectPlacement step.Optional[step.ID]
	Representation  step.Optional[step.ID]
}

func (p *Product) DecodeStep(d *step.Decoder) {
	p.Object.DecodeStep(d)
	p.ObjectPlacement = step.DecodeOptional(d, step.DecodeID)
	p.Representation = step.DecodeOptional(d, step.DecodeID)
}

func (p *Product) EncodeStep(e *step.Encoder) {
	p.Object.EncodeStep(e)
	p.ObjectPlacement.EncodeStep(e)
	p.Representation.EncodeStep(e)
}

func (p *Product) VerifyStep(v *step.Verifier) {
	p.Root.VerifyStep(v)
	step.VerifyOptional(v, "ObjectPlacement", p.ObjectPlacement, acceptPlacement)
	step.VerifyOptional(v, "Representation", p.Representation, acceptRepresentation)
}

type Element struct {
	Product
	Tag step.Optional[step.Label]
}

func (el *Element) DecodeStep(d *step.Decoder) {
	el.Product.DecodeStep(d)
	el.Tag = step.DecodeOptional(d, step.DecodeLabel)
}

func (el *Element) EncodeStep(e *step.Encoder) {
	el.Product.EncodeStep(e)
	el.Tag.EncodeStep(e)
}

// SpatialStructureElement is the common prefix of sites, buildings and
// storeys.
type SpatialStructureElement struct {
	Product
	LongName        step.Optional[step.Label]
	CompositionType step.Optional[ElementCompositionEnum]
}

func (s *SpatialStructureElement) DecodeStep(d *step.Decoder) {
	s.Product.DecodeStep(d)
	s.LongName = step.DecodeOptional(d, step.DecodeLabel)
	s.CompositionType = step.DecodeOptional(d, Compositions.Decode)
}

func (s *SpatialStructureElement) EncodeStep(e *step.Encoder) {
	s.Product.EncodeStep(e)
	s.LongName.EncodeStep(e)
	s.CompositionType.EncodeStep(e)
}

// TypeProduct is the common prefix of element types.
type TypeProduct struct {
	Root
	ApplicableOccurrence step.Optional[step.Label]
	HasPropertySets      step.Optional[step.List[step.ID]]
	RepresentationMaps   step.Optional[step.List[step.ID]]
	Tag                  step.Optional[step.Label]
}

func (t *TypeProduct) DecodeStep(d *step.Decoder) {
	t.Root.DecodeStep(d)
	t.ApplicableOccurrence = step.DecodeOptional(d, step.DecodeLabel)
	t.HasPropertySets = step.DecodeOptional(d, step.ListDecoder(step.DecodeID))
	t.RepresentationMaps = step.DecodeOptional(d, step.ListDecoder(step.DecodeID))
	t.Tag = step.DecodeOptional(d, step.DecodeLabel)
}

func (t *TypeProduct) EncodeStep(e *step.Encoder) {
	t.Root.EncodeStep(e)
	t.ApplicableOccurrence.EncodeStep(e)
	t.HasPropertySets.EncodeStep(e)
	t.RepresentationMaps.EncodeStep(e)
	t.Tag.EncodeStep(e)
}

func (t *TypeProduct) VerifyStep(v *step.Verifier) {
	t.Root.VerifyStep(v)
	step.VerifyOptionalList(v, "HasPropertySets", t.HasPropertySets, acceptPropertySet)
	step.VerifyOptionalList(v, "RepresentationMaps", t.RepresentationMaps, acceptRepresentationMap)
}

type ElementType struct {
	TypeProduct
	ElementType step.Optional[step.Label]
}

func (t *ElementType) DecodeStep(d *step.Decoder) {
	t.TypeProduct.DecodeStep(d)
	t.ElementType = step.DecodeOptional(d, step.DecodeLabel)
}

func (t *ElementType) EncodeStep(e *step.Encoder) {
	t.TypeProduct.EncodeStep(e)
	t.ElementType.EncodeStep(e)
}
