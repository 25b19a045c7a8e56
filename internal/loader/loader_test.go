package loader

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/ifc"
)

func file(records ...string) string {
	return "ISO-10303-21;\nHEADER;\n" +
		"FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\n" +
		"FILE_NAME('','2024-01-01T00:00:00',(''),(''),'','','');\n" +
		"FILE_SCHEMA(('IFC4'));\nENDSEC;\n\nDATA;\n" +
		strings.Join(records, "\n") + "\nENDSEC;\nEND-ISO-10303-21;\n"
}

var (
	validFile  = file(`#1= IFCCARTESIANPOINT((0.,0.,0.));`, `#2= IFCDIRECTION((0.,0.,1.));`, `#3= IFCAXIS2PLACEMENT3D(#1,#2,$);`)
	brokenFile = file(`#1= IFCCARTESIANPOINT((0.,0.,0.);`)
	wrongFile  = file(`#1= IFCCARTESIANPOINT((0.,0.,0.));`, `#3= IFCAXIS2PLACEMENT3D(#1,#1,$);`)
)

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	mem := fstest.MapFS{
		"models/a.ifc":     &fstest.MapFile{Data: []byte(validFile)},
		"models/b.ifc":     &fstest.MapFile{Data: []byte(brokenFile)},
		"models/c.IFC":     &fstest.MapFile{Data: []byte(wrongFile)},
		"models/notes.txt": &fstest.MapFile{Data: []byte("not a model")},
		"other/d.stp":      &fstest.MapFile{Data: []byte(validFile)},
	}
	local, err := fs.NewFileSystemLocal("/", fs.WithOptionFS(mem))
	require.NoError(t, err)
	l, err := New(append([]Option{
		OptionWithFS(local),
		OptionWithRegistry(ifc.Registry()),
		OptionWithMaxConcurrency(2),
	}, opts...)...)
	require.NoError(t, err)
	return l
}

func TestLoad(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		files      []string
		skipVerify bool
		uris       []string
		codes      []string
	}{
		{
			name:  "single",
			files: []string{"/models/a.ifc"},
			uris:  []string{"/models/a.ifc"},
		},
		{
			name:  "order kept and failures collected",
			files: []string{"/models/b.ifc", "/missing.ifc", "/models/a.ifc"},
			uris:  []string{"/models/b.ifc", "/missing.ifc", "/models/a.ifc"},
			codes: []string{exc.CodeUnexpectedToken, exc.CodeFileNotFound},
		},
		{
			name:  "directory",
			files: []string{"/models"},
			uris:  []string{"/models/a.ifc", "/models/b.ifc", "/models/c.IFC"},
			codes: []string{exc.CodeUnexpectedToken, exc.CodeUnexpectedReferenceType},
		},
		{
			name:       "skip verify",
			files:      []string{"/models/c.IFC", "/other/d.stp"},
			skipVerify: true,
			uris:       []string{"/models/c.IFC", "/other/d.stp"},
		},
		{
			name:  "duplicates loaded once",
			files: []string{"/models/a.ifc", "/models/a.ifc"},
			uris:  []string{"/models/a.ifc"},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			l := newTestLoader(t)
			resp, err := l.Load(context.Background(), &Request{Files: testCase.files, SkipVerify: testCase.skipVerify})
			require.NotNil(t, resp)

			var uris []string
			for _, result := range resp.Results {
				uris = append(uris, result.URI)
				if result.Err == nil {
					require.NotNil(t, result.Model)
				}
			}
			require.Equal(t, testCase.uris, uris)

			if len(testCase.codes) == 0 {
				require.NoError(t, err)
				return
			}
			var multi exc.MultiException
			require.ErrorAs(t, err, &multi)
			require.Equal(t, testCase.codes, multi.Codes())
		})
	}
}

func TestLoadIndependentStores(t *testing.T) {
	t.Parallel()

	l := newTestLoader(t)
	resp, err := l.Load(context.Background(), &Request{Files: []string{"/models/a.ifc", "/other/d.stp"}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	first, second := resp.Results[0].Model, resp.Results[1].Model
	require.NotSame(t, first.Data, second.Data)
	require.Equal(t, validFile, first.String())
	require.Equal(t, validFile, second.String())
}

func TestLoadStdinAndDumpTokens(t *testing.T) {
	t.Parallel()

	var dump bytes.Buffer
	l := newTestLoader(t,
		OptionWithStdin(func() idl.File {
			return fs.NewFileString(fs.StdinPath, "/* piped */\n"+validFile, idl.FileKindIFC)
		}),
		OptionWithTokenWriter(&dump),
	)
	resp, err := l.Load(context.Background(), &Request{Files: []string{"-"}, DumpTokens: true})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "-", resp.Results[0].URI)
	require.Equal(t, 3, resp.Results[0].Model.Data.Len())

	out := dump.String()
	require.True(t, strings.HasPrefix(out, "# -\n"))
	require.Contains(t, out, "TokenTypeComment")
	require.Contains(t, out, "IFCAXIS2PLACEMENT3D")
}

func TestNewRejectsNegativeConcurrency(t *testing.T) {
	t.Parallel()

	_, err := New(OptionWithMaxConcurrency(-1))
	require.Error(t, err)
}
