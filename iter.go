package vecoption

import "iter"

// All yields every index and a copy of its element, in index order.
func (v *VecOption[T]) All() iter.Seq2[int, Option[T]] {
	return func(yield func(int, Option[T]) bool) {
		for i := 0; i < v.Len(); i++ {
			o, _ := v.Get(i)
			if !yield(i, o) {
				return
			}
		}
	}
}

// Backward yields every index and element from the last slot to the first.
func (v *VecOption[T]) Backward() iter.Seq2[int, Option[T]] {
	return func(yield func(int, Option[T]) bool) {
		for i := v.Len() - 1; i >= 0; i-- {
			o, ok := v.Get(i)
			if !ok {
				continue
			}
			if !yield(i, o) {
				return
			}
		}
	}
}

// Drain moves every element out of v in index order. When iteration
// starts, v is emptied and its buffers are handed to the iterator. Present
// values not yet yielded when the loop stops early are dropped.
func (v *VecOption[T]) Drain() iter.Seq[Option[T]] {
	return func(yield func(Option[T]) bool) {
		d := v.detach()
		defer d.Release()
		for i := 0; i < d.Len(); i++ {
			if !yield(d.moveOut(i)) {
				return
			}
		}
	}
}
