// Package ifc binds a subset of the IFC schema to typed Go entities and
// offers a builder for small models.
package ifc

import "github.com/ifcstep/ifcstep/internal/step"

const (
	KeywordProject                           = "IFCPROJECT"
	KeywordSite                              = "IFCSITE"
	KeywordBuilding                          = "IFCBUILDING"
	KeywordBuildingStorey                    = "IFCBUILDINGSTOREY"
	KeywordSpace                             = "IFCSPACE"
	KeywordWall                              = "IFCWALL"
	KeywordWallStandardCase                  = "IFCWALLSTANDARDCASE"
	KeywordWallType                          = "IFCWALLTYPE"
	KeywordSlab                              = "IFCSLAB"
	KeywordSlabType                          = "IFCSLABTYPE"
	KeywordWindow                            = "IFCWINDOW"
	KeywordWindowType                        = "IFCWINDOWTYPE"
	KeywordDoor                              = "IFCDOOR"
	KeywordDoorType                          = "IFCDOORTYPE"
	KeywordOpeningElement                    = "IFCOPENINGELEMENT"
	KeywordRelVoidsElement                   = "IFCRELVOIDSELEMENT"
	KeywordRelAggregates                     = "IFCRELAGGREGATES"
	KeywordRelContainedInSpatialStructure    = "IFCRELCONTAINEDINSPATIALSTRUCTURE"
	KeywordRelDefinesByType                  = "IFCRELDEFINESBYTYPE"
	KeywordCartesianPoint                    = "IFCCARTESIANPOINT"
	KeywordDirection                         = "IFCDIRECTION"
	KeywordAxis2Placement2D                  = "IFCAXIS2PLACEMENT2D"
	KeywordAxis2Placement3D                  = "IFCAXIS2PLACEMENT3D"
	KeywordLocalPlacement                    = "IFCLOCALPLACEMENT"
	KeywordGridPlacement                     = "IFCGRIDPLACEMENT"
	KeywordLinearPlacement                   = "IFCLINEARPLACEMENT"
	KeywordGeometricRepresentationContext    = "IFCGEOMETRICREPRESENTATIONCONTEXT"
	KeywordGeometricRepresentationSubContext = "IFCGEOMETRICREPRESENTATIONSUBCONTEXT"
	KeywordOwnerHistory                      = "IFCOWNERHISTORY"
	KeywordProductDefinitionShape            = "IFCPRODUCTDEFINITIONSHAPE"
	KeywordUnitAssignment                    = "IFCUNITASSIGNMENT"
	KeywordPostalAddress                     = "IFCPOSTALADDRESS"
	KeywordPropertySet                       = "IFCPROPERTYSET"
	KeywordElementQuantity                   = "IFCELEMENTQUANTITY"
	KeywordRepresentationMap                 = "IFCREPRESENTATIONMAP"
)

// keyword groups accepted by reference fields
var (
	elementKeywords = []string{
		KeywordWall, KeywordWallStandardCase, KeywordSlab, KeywordWindow, KeywordDoor,
		KeywordOpeningElement, "IFCCOLUMN", "IFCBEAM", "IFCROOF", "IFCSTAIR",
		"IFCRAILING", "IFCCOVERING", "IFCMEMBER", "IFCPLATE", "IFCCURTAINWALL",
		"IFCFOOTING", "IFCFURNISHINGELEMENT", "IFCBUILDINGELEMENTPROXY",
	}
	spatialKeywords = []string{KeywordSite, KeywordBuilding, KeywordBuildingStorey, KeywordSpace}
	typeKeywords    = []string{
		KeywordWallType, KeywordSlabType, KeywordWindowType, KeywordDoorType,
		"IFCCOLUMNTYPE", "IFCBEAMTYPE", "IFCBUILDINGELEMENTPROXYTYPE",
	}

	acceptOwnerHistory      = step.Accept(KeywordOwnerHistory)
	acceptPlacement         = step.Accept(KeywordLocalPlacement, KeywordGridPlacement, KeywordLinearPlacement)
	acceptLocalPlacement    = step.Accept(KeywordLocalPlacement)
	acceptRepresentation    = step.Accept(KeywordProductDefinitionShape)
	acceptAddress           = step.Accept(KeywordPostalAddress)
	acceptContext           = step.Accept(KeywordGeometricRepresentationContext, KeywordGeometricRepresentationSubContext)
	acceptUnits             = step.Accept(KeywordUnitAssignment)
	acceptPropertySet       = step.Accept(KeywordPropertySet, KeywordElementQuantity)
	acceptRepresentationMap = step.Accept(KeywordRepresentationMap)
	acceptPoint             = step.Accept(KeywordCartesianPoint)
	acceptDirection         = step.Accept(KeywordDirection)
	acceptAxis3D            = step.Accept(KeywordAxis2Placement3D)
	acceptElement           = step.Accept(elementKeywords...)
	acceptOpening           = step.Accept(KeywordOpeningElement)
	// exporters also void buildings, so the host is wider than an element
	acceptVoidable = step.Accept(append([]string{KeywordBuilding}, elementKeywords...)...)
	acceptSpatial  = step.Accept(spatialKeywords...)
	acceptType     = step.Accept(typeKeywords...)
	acceptObject   = step.Accept(append(append([]string{KeywordProject}, spatialKeywords...), elementKeywords...)...)
)
