package step

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

const (
	keywordTestPoint = "TESTPOINT"
	keywordTestThing = "TESTTHING"
)

type testPoint struct {
	Coordinates List[Real]
}

func (p *testPoint) Keyword() string       { return keywordTestPoint }
func (p *testPoint) DecodeStep(d *Decoder) { p.Coordinates = DecodeList(d, DecodeReal) }
func (p *testPoint) EncodeStep(e *Encoder) { p.Coordinates.EncodeStep(e) }

type testKind string

var testKinds = NewEnumeration[testKind]("test kind", "ALPHA", "BETA")

func (k testKind) EncodeStep(e *Encoder) { e.Enum(string(k)) }

type testDim Integer

func (v testDim) EncodeStep(e *Encoder) { e.Integer(int64(v)) }

func decodeTestDim(d *Decoder) testDim {
	v := DecodeInteger(d)
	if !d.Failed() && (v < 1 || v > 3) {
		d.FailAt(nil, exc.CodeValueOutOfRange, fmt.Sprintf("dimension %d out of range", v))
	}
	return testDim(v)
}

type testThing struct {
	Name   Label
	Target Optional[TypedID[testPoint]]
	Tags   List[Label]
	Flag   Bool
	State  Logical
	Count  Optional[Integer]
	Kind   Optional[testKind]
	Dim    Optional[testDim]
}

var testThingTargets = Accept(keywordTestPoint)

func (t *testThing) Keyword() string { return keywordTestThing }

func (t *testThing) DecodeStep(d *Decoder) {
	t.Name = DecodeLabel(d)
	t.Target = DecodeOptional(d, DecodeTypedID[testPoint])
	t.Tags = DecodeList(d, DecodeLabel)
	t.Flag = DecodeBool(d)
	t.State = DecodeLogical(d)
	t.Count = DecodeOptional(d, DecodeInteger)
	t.Kind = DecodeOptional(d, testKinds.Decode)
	t.Dim = DecodeOptionalFallback(d, decodeTestDim, FallbackToken(idl.TokenTypeInteger))
}

func (t *testThing) EncodeStep(e *Encoder) {
	t.Name.EncodeStep(e)
	t.Target.EncodeStep(e)
	t.Tags.EncodeStep(e)
	t.Flag.EncodeStep(e)
	t.State.EncodeStep(e)
	t.Count.EncodeStep(e)
	t.Kind.EncodeStep(e)
	t.Dim.EncodeStep(e)
}

func (t *testThing) VerifyStep(v *Verifier) {
	VerifyOptional(v, "Target", t.Target, testThingTargets)
}

func testRegistry() RegistryMap {
	r := RegistryMap{}
	Register[testPoint](r)
	Register[testThing](r)
	return r
}

// decodeParams runs decode over the parameters of "(...)".
func decodeParams(t *testing.T, input string, decode func(d *Decoder)) error {
	t.Helper()
	tokens, err := Tokenize(context.Background(), "/test.ifc", input)
	require.NoError(t, err)
	d := NewDecoder("/test.ifc", tokens)
	if d.Open() {
		decode(d)
		d.Close()
		d.Finish()
	}
	return d.Err()
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	codes := exc.Flatten(exc.Location{}, err)
	require.NotEmpty(t, codes)
	require.Equal(t, code, codes[0].Code(), err.Error())
}

func floats(l List[Real]) []float64 {
	out := make([]float64, len(l))
	for x, r := range l {
		out[x] = r.Float64()
	}
	return out
}
