package step

import (
	"context"
	"fmt"

	"github.com/ifcstep/ifcstep/internal/idl"
)

// Value is one parameter of a record without a schema binding. Numbers keep
// their literal text so that output matches input.
type Value interface {
	Encodable
	isValue()
}

type ValueOmitted struct{}

type ValueInherited struct{}

type ValueString struct {
	Text string
}

type ValueInteger struct {
	Text string
}

type ValueReal struct {
	Text string
}

type ValueEnum struct {
	Name string
}

type ValueRef struct {
	ID ID
}

type ValueList struct {
	Items []Value
}

// ValueTyped is a parameter wrapped in its defined type, as in
// IFCLABEL('x').
type ValueTyped struct {
	Keyword string
	Params  []Value
}

func (ValueOmitted) isValue()   {}
func (ValueInherited) isValue() {}
func (ValueString) isValue()    {}
func (ValueInteger) isValue()   {}
func (ValueReal) isValue()      {}
func (ValueEnum) isValue()      {}
func (ValueRef) isValue()       {}
func (ValueList) isValue()      {}
func (ValueTyped) isValue()     {}

func (ValueOmitted) EncodeStep(e *Encoder)   { e.Omitted() }
func (ValueInherited) EncodeStep(e *Encoder) { e.Inherited() }
func (v ValueString) EncodeStep(e *Encoder)  { e.Label(v.Text) }
func (v ValueInteger) EncodeStep(e *Encoder) { e.Raw(v.Text) }
func (v ValueReal) EncodeStep(e *Encoder)    { e.Raw(v.Text) }
func (v ValueEnum) EncodeStep(e *Encoder)    { e.Enum(v.Name) }
func (v ValueRef) EncodeStep(e *Encoder)     { e.Ref(v.ID) }
func (v ValueList) EncodeStep(e *Encoder)    { encodeValues(e, v.Items) }
func (v ValueTyped) EncodeStep(e *Encoder)   { e.Keyword(v.Keyword); encodeValues(e, v.Params) }

func encodeValues(e *Encoder, values []Value) {
	e.Open()
	for _, v := range values {
		v.EncodeStep(e)
	}
	e.Close()
}

// DecodeValue reads any parameter.
func DecodeValue(d *Decoder) Value {
	if !d.slot() {
		return nil
	}
	switch d.peekType() {
	case idl.TokenTypeDollar:
		d.Next("$", idl.TokenTypeDollar)
		return ValueOmitted{}
	case idl.TokenTypeStar:
		d.Next("*", idl.TokenTypeStar)
		return ValueInherited{}
	case idl.TokenTypeString:
		return ValueString{Text: string(DecodeLabel(d))}
	case idl.TokenTypeInteger:
		tok := d.Next("integer", idl.TokenTypeInteger)
		return ValueInteger{Text: tok.Value}
	case idl.TokenTypeReal:
		tok := d.Next("real", idl.TokenTypeReal)
		return ValueReal{Text: tok.Value}
	case idl.TokenTypeEnumeration:
		tok := d.Next("enumeration", idl.TokenTypeEnumeration)
		return ValueEnum{Name: tok.Value}
	case idl.TokenTypeReference:
		return ValueRef{ID: DecodeID(d)}
	case idl.TokenTypeParenOpen:
		return ValueList{Items: decodeValues(d)}
	case idl.TokenTypeKeyword:
		tok := d.keyword()
		return ValueTyped{Keyword: tok.Value, Params: decodeValues(d)}
	}
	d.Fail("parameter")
	return nil
}

func decodeValues(d *Decoder) []Value {
	if !d.Open() {
		return nil
	}
	values := []Value{}
	for !d.Failed() && !d.AtListEnd() {
		values = append(values, DecodeValue(d))
	}
	d.Close()
	return values
}

// Record is an entity whose keyword has no binding. It keeps its parameters
// as parsed so that unknown content survives a round trip.
type Record struct {
	keyword string
	Params  []Value
}

func NewRecord(keyword string, params ...Value) *Record {
	return &Record{keyword: keyword, Params: params}
}

func (r *Record) Keyword() string {
	return r.keyword
}

func (r *Record) DecodeStep(d *Decoder) {
	r.Params = []Value{}
	for !d.Failed() && !d.AtListEnd() {
		r.Params = append(r.Params, DecodeValue(d))
	}
}

func (r *Record) EncodeStep(e *Encoder) {
	for _, v := range r.Params {
		v.EncodeStep(e)
	}
}

// VerifyStep only checks that references resolve since nothing is known
// about the accepted types.
func (r *Record) VerifyStep(v *Verifier) {
	for x, p := range r.Params {
		verifyValue(v, fmt.Sprintf("%d", x), p)
	}
}

func verifyValue(v *Verifier, field string, value Value) {
	switch value := value.(type) {
	case ValueRef:
		v.Ref(field, value.ID, Whitelist{})
	case ValueList:
		for x, item := range value.Items {
			verifyValue(v, fmt.Sprintf("%s[%d]", field, x), item)
		}
	case ValueTyped:
		for x, item := range value.Params {
			verifyValue(v, fmt.Sprintf("%s.%d", field, x), item)
		}
	}
}

// Params returns the parameters of any entity as generic values by writing
// it out and reading it back.
func Params(ctx context.Context, e Entity) ([]Value, error) {
	if r, ok := e.(*Record); ok {
		return r.Params, nil
	}
	tokens, err := Tokenize(ctx, "", FormatEntity(e))
	if err != nil {
		return nil, err
	}
	// KEYWORD ( ... ) ;
	d := NewDecoder("", tokens[1:len(tokens)-1])
	r := NewRecord(e.Keyword())
	decodeEntity(d, r)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return r.Params, nil
}
