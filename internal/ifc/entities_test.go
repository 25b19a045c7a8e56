package ifc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/step"
)

const wallLiteral = `IFCWALL('0DWgwt6o1FOx7466fPk$jl',#2,$,$,$,#33,#25,$,$);`

func requireCodes(t *testing.T, err error, codes ...string) {
	t.Helper()
	require.Error(t, err)
	var got []string
	for _, e := range exc.Flatten(exc.Location{}, err) {
		got = append(got, e.Code())
	}
	require.Equal(t, codes, got, err.Error())
}

// ifcFile wraps data records into a complete IFC4 file.
func ifcFile(records ...string) string {
	var b strings.Builder
	b.WriteString("ISO-10303-21;\nHEADER;\n")
	b.WriteString("FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\n")
	b.WriteString("FILE_NAME('test.ifc','2024-01-01T00:00:00',(''),(''),'','','');\n")
	b.WriteString("FILE_SCHEMA(('IFC4'));\nENDSEC;\n\nDATA;\n")
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	b.WriteString("ENDSEC;\nEND-ISO-10303-21;\n")
	return b.String()
}

func TestWallLiteral(t *testing.T) {
	t.Parallel()

	e, err := ParseEntity(context.Background(), wallLiteral)
	require.NoError(t, err)
	wall, ok := e.(*Wall)
	require.True(t, ok)

	require.Equal(t, GlobalID("0DWgwt6o1FOx7466fPk$jl"), wall.GlobalID)
	require.Equal(t, step.Custom(step.ID(2)), wall.OwnerHistory)
	require.True(t, wall.Name.IsOmitted())
	require.True(t, wall.Description.IsOmitted())
	require.True(t, wall.ObjectType.IsOmitted())
	require.Equal(t, step.Custom(step.ID(33)), wall.ObjectPlacement)
	require.Equal(t, step.Custom(step.ID(25)), wall.Representation)
	require.True(t, wall.Tag.IsOmitted())
	require.True(t, wall.PredefinedType.IsOmitted())

	require.Equal(t, wallLiteral, step.FormatEntity(wall))
}

func TestEntityRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected step.Entity
	}{
		{name: "project", input: `IFCPROJECT('2n8Cx0yJf3nxk5xJHc7Q2Z',$,'Project',$,$,$,$,(#20),#30);`, expected: &Project{}},
		{name: "site", input: `IFCSITE('1wY9$t8DT9fhdoCsAG7F0c',$,'Site',$,$,#40,$,$,.ELEMENT.,(51,30,0,0),(-1,-30,0,0),12.5,$,$);`, expected: &Site{}},
		{name: "building", input: `IFCBUILDING('3Mo5T6c0H8hP4dGT5fGx1k',$,'Building',$,$,#41,$,$,.ELEMENT.,0.,$,#60);`, expected: &Building{}},
		{name: "storey", input: `IFCBUILDINGSTOREY('0Fz7$Xm0b1nQ8QwU4tVh2a',$,'Level 1',$,$,#42,$,$,.ELEMENT.,3000.);`, expected: &BuildingStorey{}},
		{name: "wall", input: wallLiteral, expected: &Wall{}},
		{name: "wall with type", input: `IFCWALL('0DWgwt6o1FOx7466fPk$jl',$,'W',$,$,#33,$,'tag',.SHEAR.);`, expected: &Wall{}},
		{name: "slab", input: `IFCSLAB('1Ab3$Xm0b1nQ8QwU4tVh2a',$,'Floor',$,$,#43,$,$,.FLOOR.);`, expected: &Slab{}},
		{name: "opening", input: `IFCOPENINGELEMENT('2Ab3$Xm0b1nQ8QwU4tVh2a',$,$,$,$,#44,$,$,.OPENING.);`, expected: &OpeningElement{}},
		{name: "window", input: `IFCWINDOW('3Ab3$Xm0b1nQ8QwU4tVh2a',$,'W1',$,$,#45,$,$,1200.,900.,.WINDOW.,.SINGLE_PANEL.,$);`, expected: &Window{}},
		{name: "wall type", input: `IFCWALLTYPE('0Bb3$Xm0b1nQ8QwU4tVh2a',$,'Basic',$,$,(#70,#71),$,$,$,.STANDARD.);`, expected: &WallType{}},
		{name: "voids", input: `IFCRELVOIDSELEMENT('0Cb3$Xm0b1nQ8QwU4tVh2a',$,$,$,#5,#6);`, expected: &RelVoidsElement{}},
		{name: "aggregates", input: `IFCRELAGGREGATES('0Db3$Xm0b1nQ8QwU4tVh2a',$,$,$,#1,(#2,#3));`, expected: &RelAggregates{}},
		{name: "contained", input: `IFCRELCONTAINEDINSPATIALSTRUCTURE('0Eb3$Xm0b1nQ8QwU4tVh2a',$,'Contents',$,(#5,#6,#7),#4);`, expected: &RelContainedInSpatialStructure{}},
		{name: "defines by type", input: `IFCRELDEFINESBYTYPE('0Fb3$Xm0b1nQ8QwU4tVh2a',$,$,$,(#5),#8);`, expected: &RelDefinesByType{}},
		{name: "point", input: `IFCCARTESIANPOINT((0.,0.,0.));`, expected: &CartesianPoint{}},
		{name: "direction", input: `IFCDIRECTION((0.,0.,1.));`, expected: &Direction{}},
		{name: "axis", input: `IFCAXIS2PLACEMENT3D(#10,#11,$);`, expected: &Axis2Placement3D{}},
		{name: "world placement", input: `IFCLOCALPLACEMENT($,#12);`, expected: &LocalPlacement{}},
		{name: "relative placement", input: `IFCLOCALPLACEMENT(#40,#12);`, expected: &LocalPlacement{}},
		{name: "context", input: `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-05,#12,#11);`, expected: &GeometricRepresentationContext{}},
		{name: "context short exponent", input: `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.23E-5,#12,$);`, expected: &GeometricRepresentationContext{}},
		{name: "point with loose reals", input: `IFCCARTESIANPOINT((0.0,0.50,1.0E3));`, expected: &CartesianPoint{}},
		{name: "storey integer elevation", input: `IFCBUILDINGSTOREY('0Fz7$Xm0b1nQ8QwU4tVh2a',$,'Level 1',$,$,#42,$,$,.ELEMENT.,0);`, expected: &BuildingStorey{}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			e, err := ParseEntity(context.Background(), testCase.input)
			require.NoError(t, err)
			require.IsType(t, testCase.expected, e)
			require.Equal(t, testCase.input, step.FormatEntity(e))
		})
	}
}

func TestEntityErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		code  string
	}{
		{name: "unknown enum", input: `IFCWALL('0DWgwt6o1FOx7466fPk$jl',$,$,$,$,$,$,$,.BRICK.);`, code: exc.CodeUnknownEnumeration},
		{name: "too few", input: `IFCWALL('0DWgwt6o1FOx7466fPk$jl',$,$);`, code: exc.CodeUnexpectedToken},
		{name: "too many", input: `IFCDIRECTION((0.,0.,1.),$);`, code: exc.CodeUnexpectedToken},
		{name: "required type", input: `IFCWALLTYPE('0Bb3$Xm0b1nQ8QwU4tVh2a',$,$,$,$,$,$,$,$,$);`, code: exc.CodeUnexpectedToken},
		{name: "reference zero", input: `IFCLOCALPLACEMENT($,#0);`, code: exc.CodeInvalidReference},
		{name: "dimension not a number", input: `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model','3',$,#12,$);`, code: exc.CodeUnexpectedToken},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseEntity(context.Background(), testCase.input)
			requireCodes(t, err, testCase.code)
		})
	}
}

func TestDimensionCountFallback(t *testing.T) {
	t.Parallel()

	e, err := ParseEntity(context.Background(), `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',4,1.E-05,#12,$);`)
	require.NoError(t, err)
	ctx := e.(*GeometricRepresentationContext)
	require.True(t, ctx.CoordinateSpaceDimension.IsInherited())
	require.Equal(t, `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',*,1.E-05,#12,$);`, step.FormatEntity(ctx))

	e, err = ParseEntity(context.Background(), `IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',2,$,#12,$);`)
	require.NoError(t, err)
	dim, ok := e.(*GeometricRepresentationContext).CoordinateSpaceDimension.Value()
	require.True(t, ok)
	require.Equal(t, DimensionCount(2), dim)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := Registry()
	require.Len(t, r, 18)
	e, ok := r.New("ifcWall")
	require.True(t, ok)
	require.Equal(t, KeywordWall, e.Keyword())
	_, ok = r.New(KeywordOwnerHistory)
	require.False(t, ok)
}

var placedWall = []string{
	`#1= IFCCARTESIANPOINT((0.,0.,0.));`,
	`#2= IFCDIRECTION((0.,0.,1.));`,
	`#3= IFCAXIS2PLACEMENT3D(#1,#2,$);`,
	`#4= IFCLOCALPLACEMENT($,#3);`,
	`#5= IFCWALL('0DWgwt6o1FOx7466fPk$jl',$,'Wall',$,$,#4,$,$,.STANDARD.);`,
	`#6= IFCOPENINGELEMENT('1DWgwt6o1FOx7466fPk$jl',$,$,$,$,#4,$,$,.OPENING.);`,
}

func TestVerify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		records []string
		codes   []string
		message string
	}{
		{
			name:    "valid",
			records: []string{`#7= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',$,$,$,#5,#6);`},
		},
		{
			name: "window hosts an opening",
			records: []string{
				`#7= IFCWINDOW('4DWgwt6o1FOx7466fPk$jl',$,'W1',$,$,#4,$,$,$,$,$,$,$);`,
				`#8= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',$,$,$,#7,#6);`,
			},
		},
		{
			name: "building hosts an opening",
			records: []string{
				`#7= IFCBUILDING('5DWgwt6o1FOx7466fPk$jl',$,'B',$,$,#4,$,$,.ELEMENT.,$,$,$);`,
				`#8= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',$,$,$,#7,#6);`,
			},
		},
		{
			name:    "placement cannot host an opening",
			records: []string{`#7= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',$,$,$,#4,#6);`},
			codes:   []string{exc.CodeUnexpectedReferenceType},
		},
		{
			name:    "swapped voids",
			records: []string{`#7= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',$,$,$,#6,#5);`},
			codes:   []string{exc.CodeUnexpectedReferenceType},
			message: "#7 IFCRELVOIDSELEMENT field RelatedOpeningElement references #5: unexpected IFCWALL (expecting IFCOPENINGELEMENT)",
		},
		{
			name:    "placement is an axis",
			records: []string{`#7= IFCSLAB('3DWgwt6o1FOx7466fPk$jl',$,$,$,$,#3,$,$,$);`},
			codes:   []string{exc.CodeUnexpectedReferenceType},
		},
		{
			name:    "dangling",
			records: []string{`#7= IFCRELAGGREGATES('2DWgwt6o1FOx7466fPk$jl',$,$,$,#5,(#6,#99));`},
			codes:   []string{exc.CodeDanglingReference},
			message: "#7 IFCRELAGGREGATES field RelatedObjects[1] references #99 which does not exist",
		},
		{
			name: "collects every failure",
			records: []string{
				`#7= IFCAXIS2PLACEMENT3D(#2,#1,$);`,
				`#8= IFCRELCONTAINEDINSPATIALSTRUCTURE('2DWgwt6o1FOx7466fPk$jl',$,$,$,(#5),#5);`,
			},
			codes: []string{
				exc.CodeUnexpectedReferenceType,
				exc.CodeUnexpectedReferenceType,
				exc.CodeUnexpectedReferenceType,
			},
		},
		{
			name:    "owner history type",
			records: []string{`#7= IFCRELVOIDSELEMENT('2DWgwt6o1FOx7466fPk$jl',#1,$,$,#5,#6);`},
			codes:   []string{exc.CodeUnexpectedReferenceType},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			text := ifcFile(append(append([]string{}, placedWall...), testCase.records...)...)
			model, err := Parse(context.Background(), text)
			if len(testCase.codes) == 0 {
				require.NoError(t, err)
				require.Equal(t, text, model.String())
				return
			}
			requireCodes(t, err, testCase.codes...)
			if testCase.message != "" {
				require.Equal(t, testCase.message, exc.Flatten(exc.Location{}, err)[0].Message())
			}

			// skipping verification still loads the file
			model, err = Parse(context.Background(), text, step.OptionSkipVerify())
			require.NoError(t, err)
			require.Equal(t, text, model.String())
		})
	}
}
