package step

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatReal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    float64
		expected string
	}{
		{0, "0."},
		{math.Copysign(0, -1), "-0."},
		{7, "7."},
		{-1, "-1."},
		{0.5, "0.5"},
		{2.5, "2.5"},
		{3000, "3000."},
		{0.0001, "0.0001"},
		{0.00001, "1.E-5"},
		{0.0000123, "1.23E-5"},
		{-0.00001, "-1.E-5"},
		{1e15, "1000000000000000."},
		{1e16, "1.E+16"},
		{2.5e20, "2.5E+20"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1.0 / 3.0, "0.3333333333333333"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()
			actual := FormatReal(testCase.input)
			require.Equal(t, testCase.expected, actual)
			parsed, err := ParseReal(actual)
			require.NoError(t, err)
			require.Equal(t, testCase.input, parsed)
		})
	}
}

func TestRealKeepsSpelling(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		value float64
	}{
		{input: "1.23E-5", value: 0.0000123},
		{input: "1.23E-05", value: 0.0000123},
		{input: "0.0", value: 0},
		{input: "0.50", value: 0.5},
		{input: "1.0E3", value: 1000},
		{input: "7.", value: 7},
		{input: "0", value: 0},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			var actual Real
			err := decodeParams(t, "("+testCase.input+")", func(d *Decoder) {
				actual = DecodeReal(d)
			})
			require.NoError(t, err)
			require.Equal(t, testCase.value, actual.Float64())
			require.Equal(t, testCase.input, actual.Text())

			point := &testPoint{Coordinates: List[Real]{actual}}
			require.Equal(t, "TESTPOINT(("+testCase.input+"));", FormatEntity(point))
		})
	}

	require.Equal(t, "1.23E-5", RealOf(0.0000123).Text())
}
