package step

import (
	"strings"
)

// Encodable is anything that can be written as one STEP parameter.
type Encodable interface {
	EncodeStep(e *Encoder)
}

// Entity is a record payload: the keyword plus its ordered parameters.
// DecodeStep and EncodeStep handle the parameters only, inside the
// surrounding parentheses. Decoding the output of EncodeStep must give back
// an equal value.
type Entity interface {
	Encodable
	Keyword() string
	DecodeStep(d *Decoder)
}

// EntityPtr constrains type parameters to pointers of entity structs.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Verifiable entities check their references once the whole file is
// loaded.
type Verifiable interface {
	VerifyStep(v *Verifier)
}

// Registry creates empty entities for the keywords it knows.
type Registry interface {
	New(keyword string) (Entity, bool)
}

// RegistryMap is a Registry keyed by upper case keyword.
type RegistryMap map[string]func() Entity

func (r RegistryMap) New(keyword string) (Entity, bool) {
	factory, ok := r[strings.ToUpper(keyword)]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Register adds a factory for the keyword of T.
func Register[T any, PT EntityPtr[T]](r RegistryMap) {
	keyword := PT(new(T)).Keyword()
	r[strings.ToUpper(keyword)] = func() Entity {
		return PT(new(T))
	}
}

// FormatEntity writes e as KEYWORD(params); the form used after the "#id= "
// of a data record and for header entities.
func FormatEntity(e Entity) string {
	var b strings.Builder
	writeEntity(&b, e)
	return b.String()
}

func writeEntity(b *strings.Builder, e Entity) {
	b.WriteString(e.Keyword())
	enc := NewEncoder(b)
	enc.Open()
	e.EncodeStep(enc)
	enc.Close()
	b.WriteByte(';')
}

func decodeEntity(d *Decoder, e Entity) {
	if !d.Open() {
		return
	}
	e.DecodeStep(d)
	d.Close()
	d.Finish()
}
