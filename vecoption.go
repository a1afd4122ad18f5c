package vecoption

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/rawbytedev/vecoption/internal/bitvec"
	"github.com/rawbytedev/vecoption/internal/common"
	"github.com/rawbytedev/vecoption/internal/rawbuf"
)

var (
	// ErrIndexOutOfRange reports an index or view bound outside the
	// container. Returned errors wrap it with the index and length.
	ErrIndexOutOfRange = errors.New("vecoption: index out of range")

	// ErrInvalidRange reports a view whose lower bound exceeds its upper
	// bound.
	ErrInvalidRange = errors.New("vecoption: invalid range")
)

// Dropper is implemented by element types that must release something when
// the container discards them.
type Dropper interface {
	Drop()
}

// traits caches what the container needs to know about T.
type traits struct {
	drop  bool // T implements Dropper
	ptrs  bool // T can reference heap memory
	clone bool // T implements Cloner[T]
}

func traitsOf[T any]() traits {
	_, drop := any((*T)(nil)).(Dropper)
	_, clone := any((*T)(nil)).(Cloner[T])
	return traits{
		drop:  drop,
		ptrs:  common.HasPointers(reflect.TypeFor[T]()),
		clone: clone,
	}
}

// VecOption is a growable sequence of Option[T] that keeps the presence of
// each slot in a packed bit buffer and the values in a separate buffer of
// T. The zero value is an empty sequence ready to use.
type VecOption[T any] struct {
	flag bitvec.BitVec
	data rawbuf.Buffer[T]
	tr   traits
	trok bool
}

// CapacityInfo reports the allocated capacity of each buffer. Flag counts
// bits.
type CapacityInfo struct {
	Data int
	Flag int
}

// New returns an empty VecOption. It does not allocate buffers.
func New[T any]() *VecOption[T] {
	return &VecOption[T]{tr: traitsOf[T](), trok: true}
}

// WithCapacity returns an empty VecOption with room for at least n slots.
func WithCapacity[T any](n int) *VecOption[T] {
	v := New[T]()
	if n > 0 {
		v.data.ReserveExact(n)
		v.flag.ReserveExact(n)
	}
	return v
}

// FromValues returns a VecOption holding a copy of vals, every slot present.
func FromValues[T any](vals []T) *VecOption[T] {
	v := WithCapacity[T](len(vals))
	v.ExtendValues(vals...)
	return v
}

// FromOptions returns a VecOption holding the elements of opts in order.
func FromOptions[T any](opts []Option[T]) *VecOption[T] {
	v := WithCapacity[T](len(opts))
	v.Extend(opts...)
	return v
}

// Collect builds a VecOption from the elements yielded by seq.
func Collect[T any](seq iter.Seq[Option[T]]) *VecOption[T] {
	v := New[T]()
	v.AppendSeq(seq)
	return v
}

func (v *VecOption[T]) traits() traits {
	if !v.trok {
		v.tr = traitsOf[T]()
		v.trok = true
	}
	return v.tr
}

// Len returns the number of slots, present or not.
func (v *VecOption[T]) Len() int { return v.data.Len() }

// IsEmpty reports whether Len is zero.
func (v *VecOption[T]) IsEmpty() bool { return v.data.Len() == 0 }

// Cap returns the number of slots the container can hold without
// reallocating either buffer.
func (v *VecOption[T]) Cap() int {
	return min(v.data.Cap(), v.flag.Cap())
}

// CapacityInfo returns the capacity of both buffers.
func (v *VecOption[T]) CapacityInfo() CapacityInfo {
	return CapacityInfo{Data: v.data.Cap(), Flag: v.flag.Cap()}
}

// Count returns the number of present slots.
func (v *VecOption[T]) Count() int { return v.flag.Count() }

// Reserve makes room for at least n more slots in both buffers.
func (v *VecOption[T]) Reserve(n int) {
	if n <= 0 {
		return
	}
	old := v.Cap()
	d := v.data.Reserve(n)
	f := v.flag.Reserve(n)
	if d || f {
		tracer().Debugf("vecoption: capacity %d -> %d", old, v.Cap())
	}
}

// ReserveExact makes room for n more slots without over-allocating.
func (v *VecOption[T]) ReserveExact(n int) {
	if n <= 0 {
		return
	}
	v.data.ReserveExact(n)
	v.flag.ReserveExact(n)
}

// Push appends o.
func (v *VecOption[T]) Push(o Option[T]) {
	v.Reserve(1)
	v.flag.Push(o.ok)
	if o.ok {
		v.data.Push(o.value)
	} else {
		v.data.Extend(1)
	}
}

// PushValue appends a present slot holding x.
func (v *VecOption[T]) PushValue(x T) {
	v.Reserve(1)
	v.flag.Push(true)
	v.data.Push(x)
}

// PushNone appends an absent slot.
func (v *VecOption[T]) PushNone() {
	v.Reserve(1)
	v.flag.Push(false)
	v.data.Extend(1)
}

// Pop removes the last slot and returns its element. ok is false when the
// container is empty.
func (v *VecOption[T]) Pop() (o Option[T], ok bool) {
	present, ok := v.flag.Pop()
	if !ok {
		return Option[T]{}, false
	}
	n := v.data.Len() - 1
	if present {
		o = Some(*v.data.At(n))
	}
	v.vacate(n)
	v.data.SetLen(n)
	invariant(v.flag.Len() == v.data.Len(), "vecoption: buffers out of step after pop")
	return o, true
}

// ExtendNone appends n absent slots. Nothing is written to the storage
// buffer. A non-positive n is a no-op.
func (v *VecOption[T]) ExtendNone(n int) {
	if n <= 0 {
		return
	}
	v.Reserve(n)
	v.flag.Grow(n, false)
	v.data.Extend(n)
}

// Extend appends opts in order.
func (v *VecOption[T]) Extend(opts ...Option[T]) {
	v.Reserve(len(opts))
	for _, o := range opts {
		v.Push(o)
	}
}

// ExtendValues appends vals in order, every slot present.
func (v *VecOption[T]) ExtendValues(vals ...T) {
	n := len(vals)
	if n == 0 {
		return
	}
	v.Reserve(n)
	lo := v.data.Len()
	v.flag.Grow(n, true)
	v.data.Extend(n)
	copy(v.data.Slots()[lo:], vals)
}

// AppendSeq appends every element yielded by seq.
func (v *VecOption[T]) AppendSeq(seq iter.Seq[Option[T]]) {
	for o := range seq {
		v.Push(o)
	}
}

// Truncate shortens the container to n slots, dropping the present values
// in [n, Len) in index order. It does nothing if n >= Len.
func (v *VecOption[T]) Truncate(n int) {
	n = max(n, 0)
	l := v.Len()
	if n >= l {
		return
	}
	tr := v.traits()
	if tr.drop {
		for i := n; i < l; i++ {
			if v.flag.Get(i) {
				v.flag.Set(i, false)
				v.dropAt(i)
			}
		}
	}
	if tr.ptrs {
		v.data.Zero(n, l)
	}
	v.flag.SetLen(n)
	v.data.SetLen(n)
}

// Clear removes every slot, dropping present values. Capacity is kept.
func (v *VecOption[T]) Clear() {
	v.Truncate(0)
}

// SetAllNone makes every slot absent without changing the length. Present
// values are dropped in index order first if T implements Dropper;
// otherwise the presence buffer is overwritten in one pass.
func (v *VecOption[T]) SetAllNone() {
	tr := v.traits()
	l := v.Len()
	if tr.drop {
		for i := 0; i < l; i++ {
			if v.flag.Get(i) {
				v.flag.Set(i, false)
				v.dropAt(i)
			}
		}
	}
	if tr.ptrs {
		v.data.Zero(0, l)
	}
	v.flag.SetAll(false)
}

// Release drops every present value and frees both buffers. The container
// is empty and reusable afterwards.
func (v *VecOption[T]) Release() {
	c := v.Cap()
	v.Clear()
	v.data.Release()
	v.flag.Release()
	if c > 0 {
		tracer().Debugf("vecoption: released capacity %d", c)
	}
}

// Get returns a copy of the element at i. ok is false if i is out of range.
func (v *VecOption[T]) Get(i int) (o Option[T], ok bool) {
	if i < 0 || i >= v.Len() {
		return Option[T]{}, false
	}
	if v.flag.Get(i) {
		o = Some(*v.data.At(i))
	}
	return o, true
}

// GetMut returns a pointer to the value stored at i, or None if the slot is
// absent. The pointer is valid until the next operation that changes the
// container's length or capacity.
func (v *VecOption[T]) GetMut(i int) (o Option[*T], ok bool) {
	if i < 0 || i >= v.Len() {
		return Option[*T]{}, false
	}
	if v.flag.Get(i) {
		o = Some(v.data.At(i))
	}
	return o, true
}

// IsSomeAt reports whether slot i is present. ok is false if i is out of
// range.
func (v *VecOption[T]) IsSomeAt(i int) (present bool, ok bool) {
	if i < 0 || i >= v.Len() {
		return false, false
	}
	return v.flag.Get(i), true
}

// Swap exchanges the elements at i and j.
func (v *VecOption[T]) Swap(i, j int) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	if err := v.checkIndex(j); err != nil {
		return err
	}
	v.data.Swap(i, j)
	v.flag.Swap(i, j)
	return nil
}

// Replace stores o at i and returns the element previously there.
func (v *VecOption[T]) Replace(i int, o Option[T]) (Option[T], error) {
	if err := v.checkIndex(i); err != nil {
		return Option[T]{}, err
	}
	old := v.moveOut(i)
	v.moveIn(i, o)
	return old, nil
}

// Take removes the element at i, leaving the slot absent.
func (v *VecOption[T]) Take(i int) (Option[T], error) {
	return v.Replace(i, Option[T]{})
}

func (v *VecOption[T]) checkIndex(i int) error {
	if i < 0 || i >= v.Len() {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, v.Len())
	}
	return nil
}

// moveOut returns the element at i and marks the slot absent.
func (v *VecOption[T]) moveOut(i int) Option[T] {
	if !v.flag.Get(i) {
		return Option[T]{}
	}
	o := Some(*v.data.At(i))
	v.flag.Set(i, false)
	v.vacate(i)
	return o
}

// moveIn stores o at i. A value still present at i is dropped first.
func (v *VecOption[T]) moveIn(i int, o Option[T]) {
	if v.flag.Get(i) {
		v.flag.Set(i, false)
		v.dropAt(i)
	}
	if o.ok {
		*v.data.At(i) = o.value
		v.flag.Set(i, true)
	}
}

// vacate clears a slot that no longer holds a live value.
func (v *VecOption[T]) vacate(i int) {
	if v.traits().ptrs {
		var zero T
		*v.data.At(i) = zero
	}
}

// dropAt drops the value stored at i and vacates the slot. The presence
// bit must already be cleared.
func (v *VecOption[T]) dropAt(i int) {
	if v.traits().drop {
		any(v.data.At(i)).(Dropper).Drop()
	}
	v.vacate(i)
}

// discard drops the value held by an element that left the container.
func (v *VecOption[T]) discard(o *Option[T]) {
	if o.ok && v.traits().drop {
		any(&o.value).(Dropper).Drop()
	}
	*o = Option[T]{}
}

// detach moves both buffers into a new container, leaving v empty.
func (v *VecOption[T]) detach() *VecOption[T] {
	d := &VecOption[T]{flag: v.flag, data: v.data, tr: v.traits(), trok: true}
	v.flag = bitvec.BitVec{}
	v.data = rawbuf.Buffer[T]{}
	return d
}
