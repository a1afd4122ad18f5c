package vecoption

// Mutable is a sequence whose slots can be mutated one at a time through a
// temporary Option. Both *VecOption and View implement it.
type Mutable[T any] interface {
	Len() int
	WithMut(i int, f func(*Option[T])) error
}

// WithMut moves the element at i into a temporary, calls f with its address
// and stores the temporary back into slot i when f returns. f may change
// both the value and its presence.
//
// While f runs, slot i is absent. If f panics, the temporary is dropped, the
// slot stays absent and the panic propagates. If f shortens the container
// so that i is no longer a valid index, the temporary is dropped instead of
// being stored.
func (v *VecOption[T]) WithMut(i int, f func(*Option[T])) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	v.withSlot(i, f)
	return nil
}

func (v *VecOption[T]) withSlot(i int, f func(*Option[T])) {
	tmp := v.moveOut(i)
	done := false
	defer func() {
		if !done {
			v.discard(&tmp)
		}
	}()
	f(&tmp)
	done = true
	if i >= v.Len() {
		v.discard(&tmp)
		return
	}
	v.moveIn(i, tmp)
}

// ForEach calls f on every slot in index order, with the same contract as
// WithMut for each slot.
func (v *VecOption[T]) ForEach(f func(*Option[T])) {
	for i := 0; i < v.Len(); i++ {
		v.withSlot(i, f)
	}
}

// TryForEach is like ForEach but stops at the first slot for which f
// returns an error. That slot keeps whatever f left in the temporary; later
// slots are not visited.
func (v *VecOption[T]) TryForEach(f func(*Option[T]) error) error {
	for i := 0; i < v.Len(); i++ {
		var err error
		v.withSlot(i, func(o *Option[T]) { err = f(o) })
		if err != nil {
			return err
		}
	}
	return nil
}

// Fold threads an accumulator through every slot of s in index order. It
// stops early if f shortens the container past the next slot.
func Fold[T, A any](s Mutable[T], init A, f func(A, *Option[T]) A) A {
	acc := init
	for i := 0; i < s.Len(); i++ {
		if s.WithMut(i, func(o *Option[T]) { acc = f(acc, o) }) != nil {
			break
		}
	}
	return acc
}

// TryFold is like Fold but stops at the first error, returning the
// accumulator as it was handed to the failing call. A slot that vanished
// because f shortened the container is reported as ErrIndexOutOfRange.
func TryFold[T, A any](s Mutable[T], init A, f func(A, *Option[T]) (A, error)) (A, error) {
	acc := init
	for i := 0; i < s.Len(); i++ {
		var err error
		werr := s.WithMut(i, func(o *Option[T]) {
			var next A
			next, err = f(acc, o)
			if err == nil {
				acc = next
			}
		})
		if werr != nil {
			return acc, werr
		}
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// FoldWhile is like Fold but stops after the first call returning false.
func FoldWhile[T, A any](s Mutable[T], init A, f func(A, *Option[T]) (A, bool)) A {
	acc := init
	for i := 0; i < s.Len(); i++ {
		more := true
		if s.WithMut(i, func(o *Option[T]) { acc, more = f(acc, o) }) != nil {
			break
		}
		if !more {
			break
		}
	}
	return acc
}
