package ifc

import "github.com/ifcstep/ifcstep/internal/step"

type Wall struct {
	Element
	PredefinedType step.Optional[WallTypeEnum]
}

func (w *Wall) Keyword() string {
	return KeywordWall
}

func (w *Wall) DecodeStep(d *step.Decoder) {
	w.Element.DecodeStep(d)
	w.PredefinedType = step.DecodeOptional(d, WallTypes.Decode)
}

func (w *Wall) EncodeStep(e *step.Encoder) {
	w.Element.EncodeStep(e)
	w.PredefinedType.EncodeStep(e)
}

type Slab struct {
	Element
	PredefinedType step.Optional[SlabTypeEnum]
}

func (s *Slab) Keyword() string {
	return KeywordSlab
}

func (s *Slab) DecodeStep(d *step.Decoder) {
	s.Element.DecodeStep(d)
	s.PredefinedType = step.DecodeOptional(d, SlabTypes.Decode)
}

func (s *Slab) EncodeStep(e *step.Encoder) {
	s.Element.EncodeStep(e)
	s.PredefinedType.EncodeStep(e)
}

// OpeningElement is a void cut into an element, tied to its host by a
// RelVoidsElement.
type OpeningElement struct {
	Element
	PredefinedType step.Optional[OpeningElementTypeEnum]
}

func (o *OpeningElement) Keyword() string {
	return KeywordOpeningElement
}

func (o *OpeningElement) DecodeStep(d *step.Decoder) {
	o.Element.DecodeStep(d)
	o.PredefinedType = step.DecodeOptional(d, OpeningTypes.Decode)
}

func (o *OpeningElement) EncodeStep(e *step.Encoder) {
	o.Element.EncodeStep(e)
	o.PredefinedType.EncodeStep(e)
}

type Window struct {
	Element
	OverallHeight               step.Optional[step.Real]
	OverallWidth                step.Optional[step.Real]
	PredefinedType              step.Optional[WindowTypeEnum]
	PartitioningType            step.Optional[WindowTypePartitioningEnum]
	UserDefinedPartitioningType step.Optional[step.Label]
}

func (w *Window) Keyword() string {
	return KeywordWindow
}

func (w *Window) DecodeStep(d *step.Decoder) {
	w.Element.DecodeStep(d)
	w.OverallHeight = step.DecodeOptional(d, step.DecodeReal)
	w.OverallWidth = step.DecodeOptional(d, step.DecodeReal)
	w.PredefinedType = step.DecodeOptional(d, WindowTypes.Decode)
	w.PartitioningType = step.DecodeOptional(d, WindowPartitionings.Decode)
	w.UserDefinedPartitioningType = step.DecodeOptional(d, step.DecodeLabel)
}

func (w *Window) EncodeStep(e *step.Encoder) {
	w.Element.EncodeStep(e)
	w.OverallHeight.EncodeStep(e)
	w.OverallWidth.EncodeStep(e)
	w.PredefinedType.EncodeStep(e)
	w.PartitioningType.EncodeStep(e)
	w.UserDefinedPartitioningType.EncodeStep(e)
}

type WallType struct {
	ElementType
	PredefinedType WallTypeEnum
}

func (w *WallType) Keyword() string {
	return KeywordWallType
}

func (w *WallType) DecodeStep(d *step.Decoder) {
	w.ElementType.DecodeStep(d)
	w.PredefinedType = WallTypes.Decode(d)
}

func (w *WallType) EncodeStep(e *step.Encoder) {
	w.ElementType.EncodeStep(e)
	w.PredefinedType.EncodeStep(e)
}
