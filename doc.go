/*
Package vecoption provides VecOption, a growable sequence of optional values
that keeps presence and storage apart.

A []Option[T] pays for a discriminant next to every element, padded to the
alignment of T. A VecOption[T] instead stores one presence bit per slot in a
packed bit buffer and the values themselves in a second buffer of raw T
slots. Both buffers always have the same logical length and capacity. An
absent slot is never read, never cleaned up and never written when it is
created, so appending a run of absent slots with [VecOption.ExtendNone] costs
one bulk write on the bit buffer.

	v := vecoption.FromValues([]int{0, 1, 2, 3, 4})
	v.Swap(2, 1)                          // [Some(0) Some(2) Some(1) Some(3) Some(4)]
	v.Replace(3, vecoption.None[int]())   // returns Some(3)
	v.Take(1)                             // returns Some(2)
	fmt.Println(v)                        // [Some(0) None Some(1) None Some(4)]

Elements are never exposed as addressable Option values. Mutation of a slot's
presence goes through closures: [VecOption.WithMut] moves the element out
into a temporary Option, hands its address to the closure and writes it back
afterwards. If the closure panics the slot stays absent and the in-flight
value is cleaned up before the panic continues.

Element types that own resources implement [Dropper]. The container calls
Drop exactly once for every value it discards itself; values returned to the
caller are never dropped. Types implementing [Cloner] are duplicated element
by element by [VecOption.Clone]; all other types are copied flat, except
Dropper types, which must implement Cloner to be cloned at all.

A VecOption is not safe for concurrent use.
*/
package vecoption

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the vecoption trace namespace.
func tracer() tracing.Trace {
	return tracing.Select("vecoption")
}

// invariant panics when condition is false.
func invariant(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
