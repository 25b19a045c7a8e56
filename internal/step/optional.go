package step

import "github.com/ifcstep/ifcstep/internal/idl"

type OptionalKind uint8

const (
	// OptionalOmitted is "$": no value.
	OptionalOmitted OptionalKind = iota
	// OptionalInherited is "*": the value comes from a supertype or from
	// context.
	OptionalInherited
	OptionalCustom
)

func (k OptionalKind) String() string {
	switch k {
	case OptionalInherited:
		return "inherited"
	case OptionalCustom:
		return "custom"
	default:
		return "omitted"
	}
}

// Optional is a parameter that may be omitted ($), inherited (*) or carry a
// value. The zero value is omitted.
type Optional[T Encodable] struct {
	kind  OptionalKind
	value T
}

func Omitted[T Encodable]() Optional[T] {
	return Optional[T]{}
}

func Inherited[T Encodable]() Optional[T] {
	return Optional[T]{kind: OptionalInherited}
}

func Custom[T Encodable](v T) Optional[T] {
	return Optional[T]{kind: OptionalCustom, value: v}
}

func (o Optional[T]) Kind() OptionalKind {
	return o.kind
}

func (o Optional[T]) IsOmitted() bool {
	return o.kind == OptionalOmitted
}

func (o Optional[T]) IsInherited() bool {
	return o.kind == OptionalInherited
}

func (o Optional[T]) IsCustom() bool {
	return o.kind == OptionalCustom
}

func (o Optional[T]) Value() (T, bool) {
	return o.value, o.kind == OptionalCustom
}

// ValueOr returns the custom value or fallback.
func (o Optional[T]) ValueOr(fallback T) T {
	if o.kind != OptionalCustom {
		return fallback
	}
	return o.value
}

func (o Optional[T]) EncodeStep(e *Encoder) {
	switch o.kind {
	case OptionalOmitted:
		e.Omitted()
	case OptionalInherited:
		e.Inherited()
	default:
		o.value.EncodeStep(e)
	}
}

func DecodeOptional[T Encodable](d *Decoder, decode func(*Decoder) T) Optional[T] {
	return DecodeOptionalFallback(d, decode, nil)
}

// DecodeOptionalFallback is DecodeOptional with a lenient escape: when
// decode fails, fallback gets a chance to consume the parameter instead and
// the result becomes inherited. If the fallback fails too the original
// failure is kept.
func DecodeOptionalFallback[T Encodable](d *Decoder, decode func(*Decoder) T, fallback func(*Decoder) bool) Optional[T] {
	if !d.slot() {
		return Optional[T]{}
	}
	switch d.peekType() {
	case idl.TokenTypeDollar:
		d.Next("$", idl.TokenTypeDollar)
		return Omitted[T]()
	case idl.TokenTypeStar:
		d.Next("*", idl.TokenTypeStar)
		return Inherited[T]()
	}
	if fallback == nil {
		return Custom(decode(d))
	}
	m := d.mark()
	v := decode(d)
	if !d.Failed() {
		return Custom(v)
	}
	failure := d.err
	d.reset(m)
	if fallback(d) && !d.Failed() {
		d.fallbacks++
		return Inherited[T]()
	}
	d.err = failure
	return Optional[T]{}
}
