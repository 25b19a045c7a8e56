package step

import (
	"math"
	"strconv"
	"strings"
)

const (
	realScientificBelow = 1e-4
	realScientificFrom  = 1e16
)

// FormatReal writes v as a STEP real using the shortest digits that read
// back to the same float64. Reals always carry a decimal point ("7." for
// seven). Values below 1e-4 or from 1e16 up use an exponent without
// padding ("1.23E-5", "2.5E+16").
func FormatReal(v float64) string {
	abs := math.Abs(v)
	if v != 0 && (abs < realScientificBelow || abs >= realScientificFrom) {
		s := strconv.FormatFloat(v, 'E', -1, 64)
		mantissa, exponent, _ := strings.Cut(s, "E")
		if !strings.Contains(mantissa, ".") {
			mantissa += "."
		}
		sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
		return mantissa + "E" + sign + digits
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}

// ParseReal reads a real or integer literal.
func ParseReal(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
