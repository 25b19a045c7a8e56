// Package optional marks values that an iterator may not have. The STEP
// notion of omitted and inherited parameters lives in step.Optional.
package optional

type Optional[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// Value returns the zero value when nothing is present.
func (o Optional[T]) Value() T {
	return o.v
}

func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}

// OrElse returns the contained value or fallback when nothing is present.
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.v
	}
	return fallback
}
