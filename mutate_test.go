package vecoption

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithMutCanChangePresence(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3)})
	require.NoError(t, v.WithMut(0, func(o *Option[int]) { o.Clear() }))
	require.NoError(t, v.WithMut(1, func(o *Option[int]) { o.Set(20) }))
	require.NoError(t, v.WithMut(2, func(o *Option[int]) { *o.Ptr() *= 10 }))
	require.True(t, EqualOptions(v, []Option[int]{None[int](), Some(20), Some(30)}))
}

func TestWithMutSlotIsAbsentDuringCall(t *testing.T) {
	v := FromValues([]int{5})
	require.NoError(t, v.WithMut(0, func(o *Option[int]) {
		p, ok := v.IsSomeAt(0)
		require.True(t, ok)
		require.False(t, p)
		require.Equal(t, 5, o.Unwrap())
	}))
	require.True(t, EqualValues(v, []int{5}))
}

func TestWithMutPanicDropsInFlightValue(t *testing.T) {
	log := newDropLog()
	v := FromValues(log.items(0, 1, 2))
	capBefore := v.Cap()
	require.PanicsWithValue(t, "boom", func() {
		_ = v.WithMut(1, func(o *Option[tracked]) {
			o.Ptr().id = 1
			panic("boom")
		})
	})
	require.Equal(t, 3, v.Len())
	require.Equal(t, capBefore, v.Cap())
	p, _ := v.IsSomeAt(1)
	require.False(t, p)
	require.Equal(t, []int{1}, log.order)

	v.Release()
	require.Equal(t, []int{1, 0, 2}, log.order)
	log.requireOnce(t, 0, 1, 2)
}

func TestWithMutAfterShrinkDropsValue(t *testing.T) {
	log := newDropLog()
	v := FromValues(log.items(0, 1, 2))
	require.NoError(t, v.WithMut(2, func(o *Option[tracked]) {
		v.Truncate(1)
	}))
	require.Equal(t, 1, v.Len())
	require.Equal(t, []int{1, 2}, log.order)
	v.Release()
	log.requireOnce(t, 0, 1, 2)
}

func TestWithMutOverwrittenSlotDoesNotLeak(t *testing.T) {
	log := newDropLog()
	v := FromValues(log.items(0, 1))
	require.NoError(t, v.WithMut(0, func(o *Option[tracked]) {
		_, err := v.Replace(0, Some(tracked{id: 7, log: log}))
		require.NoError(t, err)
	}))
	require.Equal(t, []int{7}, log.order)
	o, _ := v.Get(0)
	require.Equal(t, 0, o.Unwrap().id)
}

func TestForEachVisitsEverySlot(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3)})
	seen := 0
	v.ForEach(func(o *Option[int]) {
		seen++
		if o.IsSome() {
			o.Clear()
		} else {
			o.Set(0)
		}
	})
	require.Equal(t, 3, seen)
	require.True(t, EqualOptions(v, []Option[int]{None[int](), Some(0), None[int]()}))
}

func TestTryForEachStopsAtFirstError(t *testing.T) {
	stop := errors.New("stop")
	v := FromValues([]int{1, 2, 3, 4})
	err := v.TryForEach(func(o *Option[int]) error {
		x := o.Unwrap()
		o.Set(x * 10)
		if x == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.True(t, EqualValues(v, []int{10, 20, 3, 4}))
}

func TestTryForEachPanicLeavesSlotAbsent(t *testing.T) {
	v := FromValues([]int{1, 2, 3})
	require.Panics(t, func() {
		_ = v.TryForEach(func(o *Option[int]) error {
			if o.Unwrap() == 2 {
				panic("bad")
			}
			return nil
		})
	})
	require.True(t, EqualOptions(v, []Option[int]{Some(1), None[int](), Some(3)}))
}

func TestFoldFamily(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3), Some(4)})

	sum := Fold(v, 0, func(acc int, o *Option[int]) int {
		x, ok := o.Get()
		if !ok {
			o.Set(100)
			return acc
		}
		return acc + x
	})
	require.Equal(t, 8, sum)
	require.True(t, EqualValues(v, []int{1, 100, 3, 4}))

	visits := 0
	sum = FoldWhile(v, 0, func(acc int, o *Option[int]) (int, bool) {
		visits++
		acc += o.Unwrap()
		return acc, acc < 100
	})
	require.Equal(t, 101, sum)
	require.Equal(t, 2, visits)

	tooBig := errors.New("too big")
	sum, err := TryFold(v, 0, func(acc int, o *Option[int]) (int, error) {
		if o.Unwrap() > 50 {
			return 0, tooBig
		}
		return acc + o.Unwrap(), nil
	})
	require.ErrorIs(t, err, tooBig)
	require.Equal(t, 1, sum)

	sum, err = TryFold(v, 0, func(acc int, o *Option[int]) (int, error) {
		return acc + o.Unwrap(), nil
	})
	require.NoError(t, err)
	require.Equal(t, 108, sum)
}

func TestFoldOverView(t *testing.T) {
	v := FromValues([]int{1, 2, 3, 4, 5})
	s, err := v.Slice(1, 4)
	require.NoError(t, err)
	sum := Fold[int](s, 0, func(acc int, o *Option[int]) int {
		return acc + o.Unwrap()
	})
	require.Equal(t, 9, sum)
}

func TestTryFoldOverViewStopsAtFirstAbsent(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), Some(3), Some(5), None[int](), Some(7), Some(9)})
	s, err := v.Slice(1, 5)
	require.NoError(t, err)
	errAbsent := errors.New("absent")
	acc, err := TryFold[int](s, 0, func(acc int, o *Option[int]) (int, error) {
		x, ok := o.Take().Get()
		if !ok {
			return acc, errAbsent
		}
		return acc + x, nil
	})
	require.ErrorIs(t, err, errAbsent)
	require.Equal(t, 8, acc)
	require.True(t, EqualOptions(v, []Option[int]{
		Some(1), None[int](), None[int](), None[int](), Some(7), Some(9),
	}))
}

func BenchmarkForEach(b *testing.B) {
	v := New[int]()
	for i := 0; i < 4096; i++ {
		v.PushValue(i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.ForEach(func(o *Option[int]) {
			if p := o.Ptr(); p != nil {
				*p++
			}
		})
	}
}

func TestFoldStopsWhenContainerShrinks(t *testing.T) {
	shrinkAt := func(v *VecOption[int], x int) {
		if x == 2 {
			v.Truncate(2)
		}
	}

	v := FromValues([]int{1, 2, 3, 4, 5})
	s, err := v.Slice(0, 5)
	require.NoError(t, err)
	acc, err := TryFold[int](s, 0, func(acc int, o *Option[int]) (int, error) {
		shrinkAt(v, o.Unwrap())
		return acc + o.Unwrap(), nil
	})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 3, acc)

	v = FromValues([]int{1, 2, 3, 4, 5})
	s, err = v.Slice(0, 5)
	require.NoError(t, err)
	visits := 0
	sum := Fold[int](s, 0, func(acc int, o *Option[int]) int {
		visits++
		shrinkAt(v, o.Unwrap())
		return acc + o.Unwrap()
	})
	require.Equal(t, 3, sum)
	require.Equal(t, 2, visits)

	v = FromValues([]int{1, 2, 3, 4, 5})
	s, err = v.Slice(0, 5)
	require.NoError(t, err)
	visits = 0
	sum = FoldWhile[int](s, 0, func(acc int, o *Option[int]) (int, bool) {
		visits++
		shrinkAt(v, o.Unwrap())
		return acc + o.Unwrap(), true
	})
	require.Equal(t, 3, sum)
	require.Equal(t, 2, visits)
}
