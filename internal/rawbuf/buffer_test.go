package rawbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveThenExtendKeepsBackingArray(t *testing.T) {
	var b Buffer[int]
	require.True(t, b.Reserve(10))
	require.GreaterOrEqual(t, b.Cap(), 10)
	require.Equal(t, 0, b.Len())

	before := b.Cap()
	require.False(t, b.Reserve(5))
	b.Extend(7)
	require.Equal(t, 7, b.Len())
	require.Equal(t, before, b.Cap())
}

func TestExtendPastCapacityPanics(t *testing.T) {
	var b Buffer[int]
	b.ReserveExact(2)
	require.Equal(t, 2, b.Cap())
	require.Panics(t, func() { b.Extend(3) })
}

func TestExtendExposesSpareSlotsUntouched(t *testing.T) {
	var b Buffer[int]
	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.SetLen(1)
	b.Extend(2)
	// slots are reused as they were left
	require.Equal(t, []int{1, 2, 3}, b.Slots())
}

func TestPushPopSwap(t *testing.T) {
	var b Buffer[string]
	b.Push("a")
	b.Push("b")
	b.Swap(0, 1)
	require.Equal(t, []string{"b", "a"}, b.Slots())
	require.Equal(t, "a", b.Pop())
	require.Equal(t, 1, b.Len())
	require.Panics(t, func() { b.SetLen(4) })
}

func TestFillZeroClone(t *testing.T) {
	var b Buffer[byte]
	b.Reserve(4)
	b.Extend(4)
	b.Fill(0, 4, 0xFF)
	b.Zero(1, 3)
	require.Equal(t, []byte{0xFF, 0, 0, 0xFF}, b.Slots())

	c := b.Clone()
	c.Fill(0, 4, 7)
	require.Equal(t, []byte{0xFF, 0, 0, 0xFF}, b.Slots())
	require.Equal(t, 4, c.Cap())

	b.Release()
	require.Equal(t, 0, b.Cap())
}
