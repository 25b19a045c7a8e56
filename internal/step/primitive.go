package step

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

// Label is string content exactly as written between the quotes, escapes
// included.
type Label string

// LabelOf escapes text for use as a Label.
func LabelOf(text string) Label {
	return Label(strings.ReplaceAll(text, "'", "''"))
}

// Text undoes quote doubling. Other STEP escapes are left as written.
func (l Label) Text() string {
	return strings.ReplaceAll(string(l), "''", "'")
}

func (l Label) EncodeStep(e *Encoder) {
	e.Label(string(l))
}

func DecodeLabel(d *Decoder) Label {
	tok := d.Next("string", idl.TokenTypeString)
	if tok == nil {
		return ""
	}
	return Label(tok.Value)
}

type Integer int64

func (i Integer) EncodeStep(e *Encoder) {
	e.Integer(int64(i))
}

func DecodeInteger(d *Decoder) Integer {
	tok := d.Next("integer", idl.TokenTypeInteger)
	if tok == nil {
		return 0
	}
	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		d.FailAt(tok, exc.CodeInvalidNumber, fmt.Sprintf("invalid integer %s", tok.Value))
		return 0
	}
	return Integer(v)
}

// Real is a REAL parameter. A decoded value keeps the spelling it was read
// with and writes it back unchanged; built values use FormatReal.
type Real struct {
	value float64
	text  string
}

func RealOf(v float64) Real {
	return Real{value: v}
}

// Reals builds a list of reals from plain numbers.
func Reals(values ...float64) List[Real] {
	out := make(List[Real], len(values))
	for x, v := range values {
		out[x] = RealOf(v)
	}
	return out
}

func (r Real) Float64() float64 {
	return r.value
}

// Text is the literal as it is written.
func (r Real) Text() string {
	if r.text != "" {
		return r.text
	}
	return FormatReal(r.value)
}

func (r Real) EncodeStep(e *Encoder) {
	if r.text != "" {
		e.Raw(r.text)
		return
	}
	e.Real(r.value)
}

// DecodeReal accepts integer literals as well; exporters often write 0
// where the schema asks for a real.
func DecodeReal(d *Decoder) Real {
	tok := d.Next("real", idl.TokenTypeReal, idl.TokenTypeInteger)
	if tok == nil {
		return Real{}
	}
	v, err := ParseReal(tok.Value)
	if err != nil {
		d.FailAt(tok, exc.CodeInvalidNumber, fmt.Sprintf("invalid real %s", tok.Value))
		return Real{}
	}
	return Real{value: v, text: tok.Value}
}

// Bool is always written in the long form.
type Bool bool

func (b Bool) EncodeStep(e *Encoder) {
	if b {
		e.Enum("TRUE")
		return
	}
	e.Enum("FALSE")
}

func DecodeBool(d *Decoder) Bool {
	tok := d.Next("boolean", idl.TokenTypeEnumeration)
	if tok == nil {
		return false
	}
	switch strings.ToUpper(tok.Value) {
	case "T", "TRUE":
		return true
	case "F", "FALSE":
		return false
	}
	d.FailAt(tok, exc.CodeUnknownEnumeration, fmt.Sprintf("unexpected %s (expecting boolean)", tok))
	return false
}

type Logical uint8

const (
	LogicalFalse Logical = iota
	LogicalTrue
	LogicalUnknown
)

func (l Logical) String() string {
	switch l {
	case LogicalTrue:
		return "TRUE"
	case LogicalUnknown:
		return "UNKNOWN"
	default:
		return "FALSE"
	}
}

func (l Logical) EncodeStep(e *Encoder) {
	e.Enum(l.String())
}

func DecodeLogical(d *Decoder) Logical {
	tok := d.Next("logical", idl.TokenTypeEnumeration)
	if tok == nil {
		return LogicalUnknown
	}
	switch strings.ToUpper(tok.Value) {
	case "T", "TRUE":
		return LogicalTrue
	case "F", "FALSE":
		return LogicalFalse
	case "U", "UNKNOWN":
		return LogicalUnknown
	}
	d.FailAt(tok, exc.CodeUnknownEnumeration, fmt.Sprintf("unexpected %s (expecting logical)", tok))
	return LogicalUnknown
}

// Enumeration is the set of legal values of one enumeration type.
type Enumeration[E ~string] struct {
	name   string
	values map[string]E
}

func NewEnumeration[E ~string](name string, values ...E) Enumeration[E] {
	set := Enumeration[E]{name: name, values: make(map[string]E, len(values))}
	for _, v := range values {
		set.values[string(v)] = v
	}
	return set
}

func (set Enumeration[E]) Name() string {
	return set.name
}

func (set Enumeration[E]) Contains(v E) bool {
	_, ok := set.values[string(v)]
	return ok
}

// Decode reads one value. Anything outside the set is an error.
func (set Enumeration[E]) Decode(d *Decoder) E {
	tok := d.Next(set.name, idl.TokenTypeEnumeration)
	if tok == nil {
		return ""
	}
	v, ok := set.values[tok.Value]
	if !ok {
		d.FailAt(tok, exc.CodeUnknownEnumeration, fmt.Sprintf("unknown %s value %s", set.name, tok))
		return ""
	}
	return v
}

// FallbackToken returns a fallback for DecodeOptionalFallback that accepts
// any single token of the given types.
func FallbackToken(types ...idl.TokenType) func(*Decoder) bool {
	return func(d *Decoder) bool {
		return d.Next("fallback value", types...) != nil
	}
}
