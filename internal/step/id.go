package step

import (
	"fmt"
	"strconv"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

// ID is the number of a data record. Zero is never a valid id.
type ID uint64

func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

func (id ID) Valid() bool {
	return id != 0
}

func (id ID) Target() ID {
	return id
}

func (id ID) EncodeStep(e *Encoder) {
	e.Ref(id)
}

func DecodeID(d *Decoder) ID {
	tok := d.Next("entity reference", idl.TokenTypeReference)
	if tok == nil {
		return 0
	}
	v, err := strconv.ParseUint(tok.Value, 10, 64)
	if err != nil || v == 0 {
		d.FailAt(tok, exc.CodeInvalidReference, fmt.Sprintf("invalid entity reference %s", tok))
		return 0
	}
	return ID(v)
}

// Reference is implemented by ID and TypedID so that verification helpers
// accept both.
type Reference interface {
	Encodable
	Target() ID
}

// TypedID is an ID that promises to name a record of type T. The promise is
// checked by Get and by verification, not by the compiler.
type TypedID[T any] ID

func (t TypedID[T]) ID() ID {
	return ID(t)
}

func (t TypedID[T]) Target() ID {
	return ID(t)
}

func (t TypedID[T]) String() string {
	return ID(t).String()
}

func (t TypedID[T]) EncodeStep(e *Encoder) {
	e.Ref(ID(t))
}

func DecodeTypedID[T any](d *Decoder) TypedID[T] {
	return TypedID[T](DecodeID(d))
}

// Dependency fills a field of a value from other records before the value
// itself is inserted.
type Dependency[T any] func(s *Store, v *T)

// IDOr is either the id of an existing record or a value that still has to
// be inserted, together with the nested values it depends on.
type IDOr[T any] struct {
	id     ID
	value  *T
	deps   []Dependency[T]
	insert func(s *Store, v *T) ID
}

func Existing[T any](id TypedID[T]) IDOr[T] {
	return IDOr[T]{id: ID(id)}
}

// Inline wraps a value that is inserted on first use. Dependencies run in
// the given order before the value is inserted, so nested records always
// receive smaller ids than their parent.
func Inline[T any, PT EntityPtr[T]](value PT, deps ...Dependency[T]) IDOr[T] {
	return IDOr[T]{
		value: (*T)(value),
		deps:  deps,
		insert: func(s *Store, v *T) ID {
			return s.insert(PT(v))
		},
	}
}

// IsInline reports whether the value has not been inserted yet.
func (o *IDOr[T]) IsInline() bool {
	return o.value != nil
}

// OrInsert returns the id, inserting the inline value and its dependencies
// first if needed. Later calls return the same id.
func (o *IDOr[T]) OrInsert(s *Store) TypedID[T] {
	if o.value == nil {
		if o.id == 0 {
			panic("step: OrInsert on an empty IDOr")
		}
		return TypedID[T](o.id)
	}
	for _, dep := range o.deps {
		dep(s, o.value)
	}
	o.id = o.insert(s, o.value)
	o.value, o.deps, o.insert = nil, nil, nil
	return TypedID[T](o.id)
}

// Link resolves dep and stores its id in the field selected by field.
func Link[T, U any](field func(*T) *TypedID[U], dep IDOr[U]) Dependency[T] {
	return func(s *Store, v *T) {
		*field(v) = dep.OrInsert(s)
	}
}

func LinkOptional[T, U any](field func(*T) *Optional[TypedID[U]], dep IDOr[U]) Dependency[T] {
	return func(s *Store, v *T) {
		*field(v) = Custom(dep.OrInsert(s))
	}
}

// LinkList resolves deps in order and appends their ids to the list field.
func LinkList[T, U any](field func(*T) *List[TypedID[U]], deps ...IDOr[U]) Dependency[T] {
	return func(s *Store, v *T) {
		list := field(v)
		for x := range deps {
			*list = append(*list, deps[x].OrInsert(s))
		}
	}
}
