// Package bitvec implements the presence buffer of a VecOption: a growable
// sequence of booleans packed eight to a byte.
//
// Bit i lives in byte i>>3 at position i&7, bit 0 being the least
// significant bit of byte 0 (LSB0). The byte run always covers exactly
// ceil(Len/8) bytes; bits past Len in the last byte are unspecified.
package bitvec

import (
	"math/bits"

	"github.com/rawbytedev/vecoption/internal/rawbuf"
)

// BitVec is a growable packed bit sequence. The zero value is empty and
// ready to use.
type BitVec struct {
	data rawbuf.Buffer[byte]
	len  int
}

// BytesFor returns the number of bytes needed to hold n bits.
func BytesFor(n int) int {
	return (n + 7) >> 3
}

func slot(i int) (int, uint8) {
	return i >> 3, uint8(i & 7)
}

// Len returns the number of bits.
func (b *BitVec) Len() int { return b.len }

// Cap returns the number of bits that fit without reallocating.
func (b *BitVec) Cap() int { return b.data.Cap() << 3 }

// ByteCap returns the allocated byte count.
func (b *BitVec) ByteCap() int { return b.data.Cap() }

// Reserve makes room for at least n more bits. It reports whether the
// byte run was reallocated.
func (b *BitVec) Reserve(n int) bool {
	need := BytesFor(b.len+n) - b.data.Len()
	if need <= 0 {
		return false
	}
	return b.data.Reserve(need)
}

// ReserveExact makes room for n more bits without over-allocating.
func (b *BitVec) ReserveExact(n int) bool {
	need := BytesFor(b.len+n) - b.data.Len()
	if need <= 0 {
		return false
	}
	return b.data.ReserveExact(need)
}

// Push appends v.
func (b *BitVec) Push(v bool) {
	if b.len&7 == 0 {
		b.data.Push(0)
	}
	b.put(b.len, v)
	b.len++
}

// Pop removes the last bit and returns it. ok is false when empty.
func (b *BitVec) Pop() (v bool, ok bool) {
	if b.len == 0 {
		return false, false
	}
	b.len--
	v = b.bit(b.len)
	b.data.SetLen(BytesFor(b.len))
	return v, true
}

// Get returns bit i. It panics if i is out of range.
func (b *BitVec) Get(i int) bool {
	b.check(i)
	return b.bit(i)
}

// Set writes bit i. It panics if i is out of range.
func (b *BitVec) Set(i int, v bool) {
	b.check(i)
	b.put(i, v)
}

// Swap exchanges bits i and j.
func (b *BitVec) Swap(i, j int) {
	b.check(i)
	b.check(j)
	vi, vj := b.bit(i), b.bit(j)
	b.put(i, vj)
	b.put(j, vi)
}

// Grow appends n copies of v. After finishing a partially used last byte
// the remaining bits are written as whole bytes.
func (b *BitVec) Grow(n int, v bool) {
	if n <= 0 {
		return
	}
	end := b.len + n
	for b.len&7 != 0 && b.len < end {
		b.put(b.len, v)
		b.len++
	}
	if b.len == end {
		return
	}
	need := BytesFor(end) - b.data.Len()
	b.data.Reserve(need)
	lo := b.data.Len()
	b.data.Extend(need)
	var fill byte
	if v {
		fill = 0xFF
	}
	b.data.Fill(lo, lo+need, fill)
	b.len = end
}

// SetAll overwrites every bit with v as a flat byte fill.
func (b *BitVec) SetAll(v bool) {
	var fill byte
	if v {
		fill = 0xFF
	}
	b.data.Fill(0, b.data.Len(), fill)
}

// SetLen shrinks the sequence to n bits.
func (b *BitVec) SetLen(n int) {
	if n > b.len {
		panic("bitvec: SetLen can only shrink")
	}
	b.len = n
	b.data.SetLen(BytesFor(n))
}

// Count returns the number of set bits.
func (b *BitVec) Count() int {
	s := b.data.Slots()
	if len(s) == 0 {
		return 0
	}
	n := 0
	for _, x := range s[:len(s)-1] {
		n += bits.OnesCount8(x)
	}
	last := s[len(s)-1]
	if r := b.len & 7; r != 0 {
		last &= byte(1)<<r - 1
	}
	return n + bits.OnesCount8(last)
}

// Bytes returns the packed bits. Bits past Len in the last byte are
// cleared in the returned copy.
func (b *BitVec) Bytes() []byte {
	out := make([]byte, b.data.Len())
	copy(out, b.data.Slots())
	if r := b.len & 7; r != 0 {
		out[len(out)-1] &= byte(1)<<r - 1
	}
	return out
}

// Clone returns an independent copy.
func (b *BitVec) Clone() BitVec {
	return BitVec{data: b.data.Clone(), len: b.len}
}

// Release drops the backing bytes and empties the sequence.
func (b *BitVec) Release() {
	b.data.Release()
	b.len = 0
}

func (b *BitVec) check(i int) {
	if i < 0 || i >= b.len {
		panic("bitvec: index out of range")
	}
}

func (b *BitVec) bit(i int) bool {
	s, off := slot(i)
	return b.data.Slots()[s]&(1<<off) != 0
}

func (b *BitVec) put(i int, v bool) {
	s, off := slot(i)
	p := b.data.At(s)
	if v {
		*p |= 1 << off
	} else {
		*p &^= 1 << off
	}
}
