// Package rawbuf provides the growable slot buffer underneath the presence
// and storage halves of a VecOption.
//
// A Buffer separates growing its capacity from growing its length. Extend
// makes already-reserved slots part of the buffer without writing them, so
// callers that track slot liveness elsewhere pay nothing for slots they will
// never read.
package rawbuf

import "golang.org/x/exp/slices"

// Buffer is a growable run of slots of type E. Slots in [Len, Cap) are spare
// capacity and hold whatever was last left in them.
type Buffer[E any] struct {
	s []E
}

// Len returns the number of slots in use.
func (b *Buffer[E]) Len() int { return len(b.s) }

// Cap returns the number of allocated slots.
func (b *Buffer[E]) Cap() int { return cap(b.s) }

// Spare returns the number of slots that can be added without reallocating.
func (b *Buffer[E]) Spare() int { return cap(b.s) - len(b.s) }

// Reserve makes room for at least n more slots using the amortized append
// growth policy. It reports whether the buffer was reallocated.
func (b *Buffer[E]) Reserve(n int) bool {
	if n <= b.Spare() {
		return false
	}
	b.s = slices.Grow(b.s, n)
	return true
}

// ReserveExact makes room for exactly n more slots if there is not already
// enough spare capacity. It reports whether the buffer was reallocated.
func (b *Buffer[E]) ReserveExact(n int) bool {
	if n <= b.Spare() {
		return false
	}
	s := make([]E, len(b.s), len(b.s)+n)
	copy(s, b.s)
	b.s = s
	return true
}

// Extend adds n slots to the end of the buffer without writing them.
// The capacity must have been reserved beforehand.
func (b *Buffer[E]) Extend(n int) {
	if n > b.Spare() {
		panic("rawbuf: extend past reserved capacity")
	}
	b.s = b.s[:len(b.s)+n]
}

// Push appends e. The caller reserves first when reallocation must be
// coordinated with another buffer.
func (b *Buffer[E]) Push(e E) {
	b.s = append(b.s, e)
}

// Pop removes the last slot and returns its content. It panics on an empty
// buffer.
func (b *Buffer[E]) Pop() E {
	n := len(b.s) - 1
	e := b.s[n]
	b.s = b.s[:n]
	return e
}

// SetLen shrinks the buffer to n slots. The removed slots are left as they
// are and become spare capacity.
func (b *Buffer[E]) SetLen(n int) {
	if n > len(b.s) {
		panic("rawbuf: SetLen can only shrink")
	}
	b.s = b.s[:n]
}

// At returns a pointer to slot i.
func (b *Buffer[E]) At(i int) *E { return &b.s[i] }

// Slots returns the in-use slots. The slice aliases the buffer.
func (b *Buffer[E]) Slots() []E { return b.s }

// Swap exchanges slots i and j.
func (b *Buffer[E]) Swap(i, j int) {
	b.s[i], b.s[j] = b.s[j], b.s[i]
}

// Fill writes e into every slot in [lo, hi).
func (b *Buffer[E]) Fill(lo, hi int, e E) {
	s := b.s[lo:hi]
	for i := range s {
		s[i] = e
	}
}

// Zero resets every slot in [lo, hi) to the zero value of E.
func (b *Buffer[E]) Zero(lo, hi int) {
	clear(b.s[lo:hi])
}

// Clone returns a copy holding the in-use slots, with no spare capacity.
func (b *Buffer[E]) Clone() Buffer[E] {
	if b.s == nil {
		return Buffer[E]{}
	}
	s := make([]E, len(b.s))
	copy(s, b.s)
	return Buffer[E]{s: s}
}

// Release drops the backing array.
func (b *Buffer[E]) Release() {
	b.s = nil
}
