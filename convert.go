package vecoption

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Cloner is implemented by element types whose values must be duplicated
// by something other than a plain copy.
type Cloner[T any] interface {
	Clone() T
}

// Options returns the elements as a slice of Option.
func (v *VecOption[T]) Options() []Option[T] {
	out := make([]Option[T], v.Len())
	for i := range out {
		out[i], _ = v.Get(i)
	}
	return out
}

// Values returns a copy of the stored values if every slot is present.
func (v *VecOption[T]) Values() ([]T, bool) {
	if v.flag.Count() != v.Len() {
		return nil, false
	}
	out := make([]T, v.Len())
	copy(out, v.data.Slots())
	return out, true
}

// Present returns the present values in index order.
func (v *VecOption[T]) Present() []T {
	out := make([]T, 0, v.flag.Count())
	for i := 0; i < v.Len(); i++ {
		if v.flag.Get(i) {
			out = append(out, *v.data.At(i))
		}
	}
	return out
}

// Clone returns an independent copy of v with the same elements. If T
// implements Cloner, each present value is cloned; otherwise the storage
// is copied flat. Clone panics if T implements Dropper but not Cloner,
// since a flat copy would leave both containers dropping the same values.
func (v *VecOption[T]) Clone() *VecOption[T] {
	tr := v.traits()
	if tr.drop && !tr.clone {
		panic("vecoption: Clone of a Dropper type requires Cloner")
	}
	c := &VecOption[T]{flag: v.flag.Clone(), tr: tr, trok: true}
	if !tr.drop && !tr.clone {
		c.data = v.data.Clone()
		return c
	}
	n := v.Len()
	c.data.ReserveExact(n)
	c.data.Extend(n)
	for i := 0; i < n; i++ {
		if v.flag.Get(i) {
			*c.data.At(i) = any(v.data.At(i)).(Cloner[T]).Clone()
		}
	}
	return c
}

// String formats v as [Some(1) None ...].
func (v *VecOption[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if v.flag.Get(i) {
			fmt.Fprintf(&b, "Some(%v)", *v.data.At(i))
		} else {
			b.WriteString("None")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b hold the same elements. Capacity is not
// compared.
func Equal[T comparable](a, b *VecOption[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc reports whether a and b have the same length and presence
// pattern and eq holds for every pair of present values.
func EqualFunc[T, U any](a *VecOption[T], b *VecOption[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		pa, pb := a.flag.Get(i), b.flag.Get(i)
		if pa != pb {
			return false
		}
		if pa && !eq(*a.data.At(i), *b.data.At(i)) {
			return false
		}
	}
	return true
}

// EqualOptions reports whether v holds exactly the elements of opts.
func EqualOptions[T comparable](v *VecOption[T], opts []Option[T]) bool {
	if v.Len() != len(opts) {
		return false
	}
	for i, o := range opts {
		if v.flag.Get(i) != o.ok {
			return false
		}
		if o.ok && *v.data.At(i) != o.value {
			return false
		}
	}
	return true
}

// EqualValues reports whether every slot of v is present and v holds
// exactly vals.
func EqualValues[T comparable](v *VecOption[T], vals []T) bool {
	if v.Len() != len(vals) || v.flag.Count() != len(vals) {
		return false
	}
	for i, x := range vals {
		if *v.data.At(i) != x {
			return false
		}
	}
	return true
}

// Compare orders a and b lexicographically. An absent slot sorts before
// any present one. The result is -1, 0 or +1.
func Compare[T constraints.Ordered](a, b *VecOption[T]) int {
	return CompareFunc(a, b, func(x, y T) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
}

// CompareFunc is like Compare but orders present values with cmp.
func CompareFunc[T, U any](a *VecOption[T], b *VecOption[U], cmp func(T, U) int) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		pa, pb := a.flag.Get(i), b.flag.Get(i)
		switch {
		case !pa && pb:
			return -1
		case pa && !pb:
			return 1
		case pa && pb:
			if c := cmp(*a.data.At(i), *b.data.At(i)); c != 0 {
				return c
			}
		}
	}
	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	}
	return 0
}
