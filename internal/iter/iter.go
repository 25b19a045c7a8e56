package iter

import (
	"context"
	goiter "iter"

	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/optional"
)

// NewSlice iterates over vs in order.
func NewSlice[T any](vs []T) idl.Iterator[T] {
	return &slice[T]{rest: vs}
}

type slice[T any] struct {
	rest []T
}

func (s *slice[T]) Next(ctx context.Context) optional.Optional[T] {
	if len(s.rest) == 0 {
		return optional.None[T]()
	}
	v := s.rest[0]
	s.rest = s.rest[1:]
	return optional.Some(v)
}

func (s *slice[T]) Close(ctx context.Context) error {
	s.rest = nil
	return nil
}

// FilterFunc adapts a plain function to idl.Filter. Signatures should take
// and return idl.Filter rather than this type.
type FilterFunc[T any] func(ctx context.Context, val T) bool

func (f FilterFunc[T]) Keep(ctx context.Context, val T) bool {
	return f(ctx, val)
}

// NewIteratorFilter skips every value of it that f does not keep.
func NewIteratorFilter[T any](it idl.Iterator[T], f idl.Filter[T]) idl.Iterator[T] {
	return &filtered[T]{it: it, f: f}
}

type filtered[T any] struct {
	it idl.Iterator[T]
	f  idl.Filter[T]
}

func (fl *filtered[T]) Next(ctx context.Context) optional.Optional[T] {
	v := fl.it.Next(ctx)
	for v.IsPresent() && !fl.f.Keep(ctx, v.Value()) {
		v = fl.it.Next(ctx)
	}
	return v
}

func (fl *filtered[T]) Close(ctx context.Context) error {
	return fl.it.Close(ctx)
}

// NewLookahead allows peeking up to n values past the current one. Values
// are pulled from it only when a peek or Next needs them.
func NewLookahead[T any](it idl.Iterator[T], n uint8) idl.Lookahead[T] {
	return &lookahead[T]{it: it, depth: int(n)}
}

type lookahead[T any] struct {
	it      idl.Iterator[T]
	depth   int
	started bool
	// queue[0] is the current value
	queue []optional.Optional[T]
}

// want makes sure queue holds k+1 entries.
func (l *lookahead[T]) want(ctx context.Context, k int) {
	for len(l.queue) <= k {
		l.queue = append(l.queue, l.it.Next(ctx))
	}
}

func (l *lookahead[T]) Next(ctx context.Context) optional.Optional[T] {
	if l.started && len(l.queue) > 0 {
		l.queue = l.queue[1:]
	}
	l.started = true
	l.want(ctx, 0)
	return l.queue[0]
}

func (l *lookahead[T]) Lookahead(ctx context.Context, n uint8) optional.Optional[T] {
	if int(n) > l.depth {
		return optional.None[T]()
	}
	// peeking first makes the first value current, as Next would
	l.started = true
	l.want(ctx, int(n))
	return l.queue[n]
}

func (l *lookahead[T]) Close(ctx context.Context) error {
	return l.it.Close(ctx)
}

// Collect drains an iterator into a slice and closes it. The error is the
// result of closing the iterator.
func Collect[T any](ctx context.Context, it idl.Iterator[T]) ([]T, error) {
	var values []T
	for v := range All(ctx, it) {
		values = append(values, v)
	}
	return values, it.Close(ctx)
}

// All ranges over the remaining values of it. It does not close it.
func All[T any](ctx context.Context, it idl.Iterator[T]) goiter.Seq[T] {
	return func(yield func(T) bool) {
		for v := it.Next(ctx); v.IsPresent(); v = it.Next(ctx) {
			if !yield(v.Value()) {
				return
			}
		}
	}
}
