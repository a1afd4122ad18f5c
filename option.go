package vecoption

import "fmt"

// Option represents a value that may or may not be present. A None option
// always carries the zero value of T.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns Some(*p), or None if p is nil.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return Option[T]{}
	}
	return Some(*p)
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether no value is present.
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// Unwrap returns the value. It panics if the option is None.
func (o Option[T]) Unwrap() T {
	if !o.ok {
		panic("vecoption: Unwrap on None")
	}
	return o.value
}

// UnwrapOr returns the value if present, def otherwise.
func (o Option[T]) UnwrapOr(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns a pointer to the held value, or nil for None. The pointer
// aliases o.
func (o *Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	return &o.value
}

// Set stores v, making the option Some.
func (o *Option[T]) Set(v T) {
	o.value = v
	o.ok = true
}

// Clear makes the option None.
func (o *Option[T]) Clear() {
	*o = Option[T]{}
}

// Take moves the content out, leaving None behind.
func (o *Option[T]) Take() Option[T] {
	out := *o
	*o = Option[T]{}
	return out
}

// Replace stores v and returns the previous content.
func (o *Option[T]) Replace(v T) Option[T] {
	out := *o
	o.Set(v)
	return out
}

// String formats the option as Some(v) or None.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
