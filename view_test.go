package vecoption

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceBounds(t *testing.T) {
	v := FromValues([]int{0, 1, 2, 3})
	_, err := v.Slice(-1, 2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = v.Slice(0, 5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = v.Slice(3, 2)
	require.ErrorIs(t, err, ErrInvalidRange)
	s, err := v.Slice(2, 2)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
}

func TestViewOperations(t *testing.T) {
	v := FromValues([]int{0, 1, 2, 3, 4, 5})
	s, err := v.Slice(1, 5)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())

	o, ok := s.Get(0)
	require.True(t, ok)
	require.Equal(t, Some(1), o)
	_, ok = s.Get(4)
	require.False(t, ok)

	require.NoError(t, s.Swap(0, 3))
	old, err := s.Take(1)
	require.NoError(t, err)
	require.Equal(t, Some(2), old)
	_, err = s.Replace(4, Some(9))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	p, ok := s.GetMut(2)
	require.True(t, ok)
	*p.Unwrap() = 30
	require.NoError(t, s.WithMut(1, func(o *Option[int]) { o.Set(20) }))
	require.True(t, EqualValues(v, []int{0, 4, 20, 30, 1, 5}))

	s.ForEach(func(o *Option[int]) { *o.Ptr() += 100 })
	require.True(t, EqualValues(v, []int{0, 104, 120, 130, 101, 5}))

	var idx []int
	for i, o := range s.All() {
		idx = append(idx, i)
		require.True(t, o.IsSome())
	}
	require.Equal(t, []int{0, 1, 2, 3}, idx)
}

func TestViewAfterShrink(t *testing.T) {
	v := FromValues([]int{0, 1, 2, 3})
	s, err := v.Slice(1, 4)
	require.NoError(t, err)
	v.Truncate(2)
	_, ok := s.Get(0)
	require.True(t, ok)
	_, ok = s.Get(1)
	require.False(t, ok)
	_, err = s.Take(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	visited := 0
	s.ForEach(func(*Option[int]) { visited++ })
	require.Equal(t, 1, visited)
}

func TestViewTryForEach(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3)})
	s, err := v.Slice(0, 3)
	require.NoError(t, err)
	err = s.TryForEach(func(o *Option[int]) error {
		if o.IsNone() {
			o.Set(2)
		}
		return nil
	})
	require.NoError(t, err)
	require.True(t, EqualValues(v, []int{1, 2, 3}))
}

func TestViewTryForEachReportsVanishedSlot(t *testing.T) {
	v := FromValues([]int{0, 1, 2, 3})
	s, err := v.Slice(0, 3)
	require.NoError(t, err)
	calls := 0
	err = s.TryForEach(func(o *Option[int]) error {
		calls++
		v.Truncate(1)
		return nil
	})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 1, calls)
	require.True(t, EqualValues(v, []int{0}))

	calls = 0
	s.ForEach(func(*Option[int]) { calls++ })
	require.Equal(t, 1, calls)
}
