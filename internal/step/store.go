package step

import (
	"fmt"
	"iter"

	"github.com/ifcstep/ifcstep/internal/idl"
)

// Store holds the data section of one file. Records are kept in insertion
// order and are never removed. A store is not safe for concurrent writes.
type Store struct {
	records map[ID]Entity
	order   []ID
	sources map[ID]idl.Location
	next    ID
}

func NewStore() *Store {
	return &Store{
		records: make(map[ID]Entity),
		sources: make(map[ID]idl.Location),
		next:    1,
	}
}

func (s *Store) Len() int {
	return len(s.order)
}

// NextID is the id the next inserted record receives.
func (s *Store) NextID() ID {
	return s.next
}

func (s *Store) insert(e Entity) ID {
	id := s.next
	s.records[id] = e
	s.order = append(s.order, id)
	s.next++
	return id
}

// insertAt adds a record under an id chosen by the file. It returns false
// when the id is taken.
func (s *Store) insertAt(id ID, e Entity, source idl.Location) bool {
	if _, ok := s.records[id]; ok {
		return false
	}
	s.records[id] = e
	s.order = append(s.order, id)
	s.sources[id] = source
	if id >= s.next {
		s.next = id + 1
	}
	return true
}

func (s *Store) GetUntyped(id ID) (Entity, bool) {
	e, ok := s.records[id]
	return e, ok
}

// Source returns where a parsed record was read from.
func (s *Store) Source(id ID) (idl.Location, bool) {
	loc, ok := s.sources[id]
	return loc, ok
}

// All yields every record in insertion order.
func (s *Store) All() iter.Seq2[ID, Entity] {
	return func(yield func(ID, Entity) bool) {
		for _, id := range s.order {
			if !yield(id, s.records[id]) {
				return
			}
		}
	}
}

// InsertNew appends v under a fresh id.
func InsertNew[T any, PT EntityPtr[T]](s *Store, v PT) TypedID[T] {
	return TypedID[T](s.insert(v))
}

// Get returns the record behind a typed id. A missing record or one of
// another type means the id was not issued by this store for T, which is a
// programming error, so Get panics.
func Get[T any, PT EntityPtr[T]](s *Store, id TypedID[T]) PT {
	e, ok := s.records[ID(id)]
	if !ok {
		panic(fmt.Sprintf("step: %s is not in the store", ID(id)))
	}
	v, ok := e.(PT)
	if !ok {
		panic(fmt.Sprintf("step: %s holds %T, not %T", ID(id), e, PT(nil)))
	}
	return v
}

// Lookup is the checked form of Get for ids of unknown type.
func Lookup[T any, PT EntityPtr[T]](s *Store, id ID) (PT, bool) {
	e, ok := s.records[id]
	if !ok {
		return nil, false
	}
	v, ok := e.(PT)
	return v, ok
}

// FindAll yields every record of type T in insertion order. The sequence is
// lazy and may be ranged over again.
func FindAll[T any, PT EntityPtr[T]](s *Store) iter.Seq2[ID, PT] {
	return func(yield func(ID, PT) bool) {
		for _, id := range s.order {
			v, ok := s.records[id].(PT)
			if !ok {
				continue
			}
			if !yield(id, v) {
				return
			}
		}
	}
}

func IDsOf[T any, PT EntityPtr[T]](s *Store) iter.Seq[TypedID[T]] {
	return func(yield func(TypedID[T]) bool) {
		for _, id := range s.order {
			if _, ok := s.records[id].(PT); !ok {
				continue
			}
			if !yield(TypedID[T](id)) {
				return
			}
		}
	}
}

// LastOf returns the most recently inserted record of type T. It is meant
// for builders that create a record and refer to it right after; with more
// than one writer the answer is meaningless.
func LastOf[T any, PT EntityPtr[T]](s *Store) (TypedID[T], bool) {
	for x := len(s.order) - 1; x >= 0; x-- {
		id := s.order[x]
		if _, ok := s.records[id].(PT); ok {
			return TypedID[T](id), true
		}
	}
	return 0, false
}
