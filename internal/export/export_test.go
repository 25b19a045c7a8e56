package export

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ifcstep/ifcstep/internal/ifc"
)

const sample = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('x.ifc','2024-01-01T00:00:00',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;

DATA;
#1= IFCCARTESIANPOINT((0.,1.5,-2.));
#2= IFCWALL('0DWgwt6o1FOx7466fPk$jl',$,'it''s',$,$,$,$,*,.SHEAR.);
#3= IFCPROPERTYSINGLEVALUE('Width',$,IFCLENGTHMEASURE(250.),#2);
ENDSEC;
END-ISO-10303-21;
`

func mustValue(t *testing.T, v any) *structpb.Value {
	t.Helper()
	out, err := structpb.NewValue(v)
	require.NoError(t, err)
	return out
}

func TestToStruct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	model, err := ifc.Parse(ctx, sample)
	require.NoError(t, err)
	st, err := ToStruct(ctx, model)
	require.NoError(t, err)

	header := st.Fields["header"].GetListValue().GetValues()
	require.Len(t, header, 3)
	require.Equal(t, "FILE_SCHEMA", header[2].GetStructValue().Fields["keyword"].GetStringValue())

	data := st.Fields["data"].GetListValue().GetValues()
	require.Len(t, data, 3)

	testCases := []struct {
		name     string
		index    int
		expected any
	}{
		{
			name:  "point",
			index: 0,
			expected: map[string]any{
				"id": 1, "keyword": "IFCCARTESIANPOINT",
				"params": []any{[]any{0, 1.5, -2}},
			},
		},
		{
			name:  "wall",
			index: 1,
			expected: map[string]any{
				"id": 2, "keyword": "IFCWALL",
				"params": []any{
					"0DWgwt6o1FOx7466fPk$jl", nil, "it's", nil, nil, nil, nil,
					map[string]any{"inherited": true},
					map[string]any{"enum": "SHEAR"},
				},
			},
		},
		{
			name:  "generic",
			index: 2,
			expected: map[string]any{
				"id": 3, "keyword": "IFCPROPERTYSINGLEVALUE",
				"params": []any{
					"Width", nil,
					map[string]any{"type": "IFCLENGTHMEASURE", "params": []any{250}},
					map[string]any{"ref": 2},
				},
			},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Empty(t, cmp.Diff(mustValue(t, testCase.expected), data[testCase.index], protocmp.Transform()))
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	model, err := ifc.Parse(ctx, sample)
	require.NoError(t, err)
	want, err := ToStruct(ctx, model)
	require.NoError(t, err)

	js, err := MarshalJSON(ctx, model)
	require.NoError(t, err)
	fromJSON := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal(js, fromJSON))
	require.Empty(t, cmp.Diff(want, fromJSON, protocmp.Transform()))

	bin, err := MarshalBinary(ctx, model)
	require.NoError(t, err)
	fromBinary := &structpb.Struct{}
	require.NoError(t, proto.Unmarshal(bin, fromBinary))
	require.True(t, proto.Equal(want, fromBinary))

	again, err := MarshalBinary(ctx, model)
	require.NoError(t, err)
	require.Equal(t, bin, again)
}
