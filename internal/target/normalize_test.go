package target

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cwd, err := filepath.Abs(".")
	require.NoError(t, err)
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "stdin", input: "-", expected: "-"},
		{name: "absolute", input: "/data/model.ifc", expected: "/data/model.ifc"},
		{name: "file uri", input: "file:///data/model.ifc", expected: "/data/model.ifc"},
		{name: "relative", input: "model.ifc", expected: filepath.Join(cwd, "model.ifc")},
		{name: "remote", input: "https://example.com/model.ifc", expected: "https://example.com/model.ifc"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, Normalize(testCase.input))
		})
	}
}
