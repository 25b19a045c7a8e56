package ifc

import (
	"fmt"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/step"
)

type WallTypeEnum string

const (
	WallTypeMovable       WallTypeEnum = "MOVABLE"
	WallTypeParapet       WallTypeEnum = "PARAPET"
	WallTypePartitioning  WallTypeEnum = "PARTITIONING"
	WallTypePlumbingWall  WallTypeEnum = "PLUMBINGWALL"
	WallTypeShear         WallTypeEnum = "SHEAR"
	WallTypeSolidWall     WallTypeEnum = "SOLIDWALL"
	WallTypeStandard      WallTypeEnum = "STANDARD"
	WallTypePolygonal     WallTypeEnum = "POLYGONAL"
	WallTypeElementedWall WallTypeEnum = "ELEMENTEDWALL"
	WallTypeRetainingWall WallTypeEnum = "RETAININGWALL"
	WallTypeWaveWall      WallTypeEnum = "WAVEWALL"
	WallTypeUserDefined   WallTypeEnum = "USERDEFINED"
	WallTypeNotDefined    WallTypeEnum = "NOTDEFINED"
)

var WallTypes = step.NewEnumeration("IfcWallTypeEnum",
	WallTypeMovable, WallTypeParapet, WallTypePartitioning, WallTypePlumbingWall,
	WallTypeShear, WallTypeSolidWall, WallTypeStandard, WallTypePolygonal,
	WallTypeElementedWall, WallTypeRetainingWall, WallTypeWaveWall,
	WallTypeUserDefined, WallTypeNotDefined)

func (v WallTypeEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

type SlabTypeEnum string

const (
	SlabTypeFloor        SlabTypeEnum = "FLOOR"
	SlabTypeRoof         SlabTypeEnum = "ROOF"
	SlabTypeLanding      SlabTypeEnum = "LANDING"
	SlabTypeBaseSlab     SlabTypeEnum = "BASESLAB"
	SlabTypeApproachSlab SlabTypeEnum = "APPROACH_SLAB"
	SlabTypePaving       SlabTypeEnum = "PAVING"
	SlabTypeWearing      SlabTypeEnum = "WEARING"
	SlabTypeSidewalk     SlabTypeEnum = "SIDEWALK"
	SlabTypeUserDefined  SlabTypeEnum = "USERDEFINED"
	SlabTypeNotDefined   SlabTypeEnum = "NOTDEFINED"
)

var SlabTypes = step.NewEnumeration("IfcSlabTypeEnum",
	SlabTypeFloor, SlabTypeRoof, SlabTypeLanding, SlabTypeBaseSlab,
	SlabTypeApproachSlab, SlabTypePaving, SlabTypeWearing, SlabTypeSidewalk,
	SlabTypeUserDefined, SlabTypeNotDefined)

func (v SlabTypeEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

type WindowTypeEnum string

const (
	WindowTypeWindow      WindowTypeEnum = "WINDOW"
	WindowTypeSkylight    WindowTypeEnum = "SKYLIGHT"
	WindowTypeLightDome   WindowTypeEnum = "LIGHTDOME"
	WindowTypeUserDefined WindowTypeEnum = "USERDEFINED"
	WindowTypeNotDefined  WindowTypeEnum = "NOTDEFINED"
)

var WindowTypes = step.NewEnumeration("IfcWindowTypeEnum",
	WindowTypeWindow, WindowTypeSkylight, WindowTypeLightDome,
	WindowTypeUserDefined, WindowTypeNotDefined)

func (v WindowTypeEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

type WindowTypePartitioningEnum string

const (
	WindowPartitioningSinglePanel           WindowTypePartitioningEnum = "SINGLE_PANEL"
	WindowPartitioningDoublePanelVertical   WindowTypePartitioningEnum = "DOUBLE_PANEL_VERTICAL"
	WindowPartitioningDoublePanelHorizontal WindowTypePartitioningEnum = "DOUBLE_PANEL_HORIZONTAL"
	WindowPartitioningTriplePanelVertical   WindowTypePartitioningEnum = "TRIPLE_PANEL_VERTICAL"
	WindowPartitioningTriplePanelBottom     WindowTypePartitioningEnum = "TRIPLE_PANEL_BOTTOM"
	WindowPartitioningTriplePanelTop        WindowTypePartitioningEnum = "TRIPLE_PANEL_TOP"
	WindowPartitioningTriplePanelLeft       WindowTypePartitioningEnum = "TRIPLE_PANEL_LEFT"
	WindowPartitioningTriplePanelRight      WindowTypePartitioningEnum = "TRIPLE_PANEL_RIGHT"
	WindowPartitioningTriplePanelHorizontal WindowTypePartitioningEnum = "TRIPLE_PANEL_HORIZONTAL"
	WindowPartitioningUserDefined           WindowTypePartitioningEnum = "USERDEFINED"
	WindowPartitioningNotDefined            WindowTypePartitioningEnum = "NOTDEFINED"
)

var WindowPartitionings = step.NewEnumeration("IfcWindowTypePartitioningEnum",
	WindowPartitioningSinglePanel, WindowPartitioningDoublePanelVertical,
	WindowPartitioningDoublePanelHorizontal, WindowPartitioningTriplePanelVertical,
	WindowPartitioningTriplePanelBottom, WindowPartitioningTriplePanelTop,
	WindowPartitioningTriplePanelLeft, WindowPartitioningTriplePanelRight,
	WindowPartitioningTriplePanelHorizontal, WindowPartitioningUserDefined,
	WindowPartitioningNotDefined)

func (v WindowTypePartitioningEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

type OpeningElementTypeEnum string

const (
	OpeningTypeOpening     OpeningElementTypeEnum = "OPENING"
	OpeningTypeRecess      OpeningElementTypeEnum = "RECESS"
	OpeningTypeUserDefined OpeningElementTypeEnum = "USERDEFINED"
	OpeningTypeNotDefined  OpeningElementTypeEnum = "NOTDEFINED"
)

var OpeningTypes = step.NewEnumeration("IfcOpeningElementTypeEnum",
	OpeningTypeOpening, OpeningTypeRecess, OpeningTypeUserDefined, OpeningTypeNotDefined)

func (v OpeningElementTypeEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

type ElementCompositionEnum string

const (
	CompositionComplex ElementCompositionEnum = "COMPLEX"
	CompositionElement ElementCompositionEnum = "ELEMENT"
	CompositionPartial ElementCompositionEnum = "PARTIAL"
)

var Compositions = step.NewEnumeration("IfcElementCompositionEnum",
	CompositionComplex, CompositionElement, CompositionPartial)

func (v ElementCompositionEnum) EncodeStep(e *step.Encoder) {
	e.Enum(string(v))
}

// DimensionCount is the number of dimensions of a coordinate space, 1 to 3.
type DimensionCount int64

func (v DimensionCount) EncodeStep(e *step.Encoder) {
	e.Integer(int64(v))
}

func DecodeDimensionCount(d *step.Decoder) DimensionCount {
	v := step.DecodeInteger(d)
	if d.Failed() {
		return 0
	}
	if v < 1 || v > 3 {
		d.FailAt(nil, exc.CodeValueOutOfRange, fmt.Sprintf("dimension count %d is outside 1..3", v))
		return 0
	}
	return DimensionCount(v)
}

// DecodeOptionalDimensionCount reads a dimension count leniently: an
// integer outside 1..3 is read as inherited instead of failing the file.
func DecodeOptionalDimensionCount(d *step.Decoder) step.Optional[DimensionCount] {
	return step.DecodeOptionalFallback(d, DecodeDimensionCount, step.FallbackToken(idl.TokenTypeInteger))
}
