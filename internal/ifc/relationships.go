package ifc

import "github.com/ifcstep/ifcstep/internal/step"

// RelVoidsElement links an element to the opening that cuts it.
type RelVoidsElement struct {
	Root
	RelatingBuildingElement step.ID
	RelatedOpeningElement   step.TypedID[OpeningElement]
}

func (r *RelVoidsElement) Keyword() string {
	return KeywordRelVoidsElement
}

func (r *RelVoidsElement) DecodeStep(d *step.Decoder) {
	r.Root.DecodeStep(d)
	r.RelatingBuildingElement = step.DecodeID(d)
	r.RelatedOpeningElement = step.DecodeTypedID[OpeningElement](d)
}

func (r *RelVoidsElement) EncodeStep(e *step.Encoder) {
	r.Root.EncodeStep(e)
	r.RelatingBuildingElement.EncodeStep(e)
	r.RelatedOpeningElement.EncodeStep(e)
}

func (r *RelVoidsElement) VerifyStep(v *step.Verifier) {
	r.Root.VerifyStep(v)
	step.VerifyRef(v, "RelatingBuildingElement", r.RelatingBuildingElement, acceptVoidable)
	step.VerifyRef(v, "RelatedOpeningElement", r.RelatedOpeningElement, acceptOpening)
}

// RelAggregates decomposes an object into parts, e.g. a site into
// buildings.
type RelAggregates struct {
	Root
	RelatingObject step.ID
	RelatedObjects step.List[step.ID]
}

func (r *RelAggregates) Keyword() string {
	return KeywordRelAggregates
}

func (r *RelAggregates) DecodeStep(d *step.Decoder) {
	r.Root.DecodeStep(d)
	r.RelatingObject = step.DecodeID(d)
	r.RelatedObjects = step.DecodeList(d, step.DecodeID)
}

func (r *RelAggregates) EncodeStep(e *step.Encoder) {
	r.Root.EncodeStep(e)
	r.RelatingObject.EncodeStep(e)
	r.RelatedObjects.EncodeStep(e)
}

func (r *RelAggregates) VerifyStep(v *step.Verifier) {
	r.Root.VerifyStep(v)
	step.VerifyRef(v, "RelatingObject", r.RelatingObject, acceptObject)
	step.VerifyList(v, "RelatedObjects", r.RelatedObjects, acceptObject)
}

type RelContainedInSpatialStructure struct {
	Root
	RelatedElements   step.List[step.ID]
	RelatingStructure step.ID
}

func (r *RelContainedInSpatialStructure) Keyword() string {
	return KeywordRelContainedInSpatialStructure
}

func (r *RelContainedInSpatialStructure) DecodeStep(d *step.Decoder) {
	r.Root.DecodeStep(d)
	r.RelatedElements = step.DecodeList(d, step.DecodeID)
	r.RelatingStructure = step.DecodeID(d)
}

func (r *RelContainedInSpatialStructure) EncodeStep(e *step.Encoder) {
	r.Root.EncodeStep(e)
	r.RelatedElements.EncodeStep(e)
	r.RelatingStructure.EncodeStep(e)
}

func (r *RelContainedInSpatialStructure) VerifyStep(v *step.Verifier) {
	r.Root.VerifyStep(v)
	step.VerifyList(v, "RelatedElements", r.RelatedElements, acceptElement)
	step.VerifyRef(v, "RelatingStructure", r.RelatingStructure, acceptSpatial)
}

type RelDefinesByType struct {
	Root
	RelatedObjects step.List[step.ID]
	RelatingType   step.ID
}

func (r *RelDefinesByType) Keyword() string {
	return KeywordRelDefinesByType
}

func (r *RelDefinesByType) DecodeStep(d *step.Decoder) {
	r.Root.DecodeStep(d)
	r.RelatedObjects = step.DecodeList(d, step.DecodeID)
	r.RelatingType = step.DecodeID(d)
}

func (r *RelDefinesByType) EncodeStep(e *step.Encoder) {
	r.Root.EncodeStep(e)
	r.RelatedObjects.EncodeStep(e)
	r.RelatingType.EncodeStep(e)
}

func (r *RelDefinesByType) VerifyStep(v *step.Verifier) {
	r.Root.VerifyStep(v)
	step.VerifyList(v, "RelatedObjects", r.RelatedObjects, acceptElement)
	step.VerifyRef(v, "RelatingType", r.RelatingType, acceptType)
}
