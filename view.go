package vecoption

import (
	"fmt"
	"iter"
)

// View is a window [lo, hi) over a VecOption. Indexes passed to its methods
// are relative to lo. A View stays valid until the length of the underlying
// container changes; after that its methods report ErrIndexOutOfRange for
// slots that no longer exist.
type View[T any] struct {
	v      *VecOption[T]
	lo, hi int
}

// Slice returns the view over slots [lo, hi).
func (v *VecOption[T]) Slice(lo, hi int) (View[T], error) {
	if lo > hi {
		return View[T]{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, lo, hi)
	}
	if lo < 0 || hi > v.Len() {
		return View[T]{}, fmt.Errorf("%w: [%d, %d), length %d", ErrIndexOutOfRange, lo, hi, v.Len())
	}
	return View[T]{v: v, lo: lo, hi: hi}, nil
}

// Len returns the number of slots in the view.
func (s View[T]) Len() int { return s.hi - s.lo }

func (s View[T]) index(i int) (int, error) {
	if i < 0 || i >= s.Len() || s.lo+i >= s.v.Len() {
		return 0, fmt.Errorf("%w: index %d, view length %d", ErrIndexOutOfRange, i, s.Len())
	}
	return s.lo + i, nil
}

// Get returns a copy of the element at i.
func (s View[T]) Get(i int) (Option[T], bool) {
	j, err := s.index(i)
	if err != nil {
		return Option[T]{}, false
	}
	return s.v.Get(j)
}

// GetMut returns a pointer to the value stored at i, or None if absent.
func (s View[T]) GetMut(i int) (Option[*T], bool) {
	j, err := s.index(i)
	if err != nil {
		return Option[*T]{}, false
	}
	return s.v.GetMut(j)
}

// Replace stores o at i and returns the previous element.
func (s View[T]) Replace(i int, o Option[T]) (Option[T], error) {
	j, err := s.index(i)
	if err != nil {
		return Option[T]{}, err
	}
	return s.v.Replace(j, o)
}

// Take removes the element at i, leaving the slot absent.
func (s View[T]) Take(i int) (Option[T], error) {
	return s.Replace(i, Option[T]{})
}

// Swap exchanges the elements at i and j.
func (s View[T]) Swap(i, j int) error {
	a, err := s.index(i)
	if err != nil {
		return err
	}
	b, err := s.index(j)
	if err != nil {
		return err
	}
	return s.v.Swap(a, b)
}

// WithMut is VecOption.WithMut restricted to the view.
func (s View[T]) WithMut(i int, f func(*Option[T])) error {
	j, err := s.index(i)
	if err != nil {
		return err
	}
	s.v.withSlot(j, f)
	return nil
}

// ForEach calls f on every slot of the view in order. If f shortens the
// underlying container, the walk stops at the first slot that no longer
// exists.
func (s View[T]) ForEach(f func(*Option[T])) {
	for i := 0; i < s.Len(); i++ {
		if s.WithMut(i, f) != nil {
			return
		}
	}
}

// TryForEach is like ForEach but stops at the first error. A slot that
// vanished because f shortened the container is reported as
// ErrIndexOutOfRange.
func (s View[T]) TryForEach(f func(*Option[T]) error) error {
	for i := 0; i < s.Len(); i++ {
		var ferr error
		if err := s.WithMut(i, func(o *Option[T]) { ferr = f(o) }); err != nil {
			return err
		}
		if ferr != nil {
			return ferr
		}
	}
	return nil
}

// All yields the view's elements with view-relative indexes.
func (s View[T]) All() iter.Seq2[int, Option[T]] {
	return func(yield func(int, Option[T]) bool) {
		for i := 0; i < s.Len(); i++ {
			o, ok := s.Get(i)
			if !ok || !yield(i, o) {
				return
			}
		}
	}
}
