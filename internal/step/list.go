package step

// List is an ordered aggregate. Order is preserved exactly.
type List[T Encodable] []T

func ListOf[T Encodable](values ...T) List[T] {
	return List[T](values)
}

func (l List[T]) EncodeStep(e *Encoder) {
	e.Open()
	for _, v := range l {
		v.EncodeStep(e)
	}
	e.Close()
}

// DecodeList reads "(" elem, ... ")". An empty list decodes to a non-nil
// empty List.
func DecodeList[T Encodable](d *Decoder, decode func(*Decoder) T) List[T] {
	if !d.Open() {
		return nil
	}
	values := List[T]{}
	for !d.Failed() && !d.AtListEnd() {
		values = append(values, decode(d))
	}
	d.Close()
	return values
}

// ListDecoder adapts DecodeList for use as an element or optional decoder.
func ListDecoder[T Encodable](decode func(*Decoder) T) func(*Decoder) List[T] {
	return func(d *Decoder) List[T] {
		return DecodeList(d, decode)
	}
}
