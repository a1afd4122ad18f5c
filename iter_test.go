package vecoption

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllAndBackward(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3)})
	var fwd, bwd []Option[int]
	for _, o := range v.All() {
		fwd = append(fwd, o)
	}
	for _, o := range v.Backward() {
		bwd = append(bwd, o)
	}
	require.Equal(t, v.Options(), fwd)
	slices.Reverse(bwd)
	require.Equal(t, fwd, bwd)

	for i := range v.All() {
		if i == 1 {
			break
		}
	}
}

func TestCollectAndAppendSeq(t *testing.T) {
	src := FromOptions([]Option[string]{Some("a"), None[string](), Some("c")})
	seq := func(yield func(Option[string]) bool) {
		for _, o := range src.All() {
			if !yield(o) {
				return
			}
		}
	}
	c := Collect(seq)
	require.True(t, Equal(src, c))
	c.AppendSeq(seq)
	require.Equal(t, 6, c.Len())
	require.Equal(t, 4, c.Count())
}

func TestDrainMovesEverythingOut(t *testing.T) {
	log := newDropLog()
	v := FromValues(log.items(0, 1, 2))
	v.PushNone()
	var got []int
	for o := range v.Drain() {
		if x, ok := o.Get(); ok {
			got = append(got, x.id)
		}
	}
	require.Equal(t, []int{0, 1, 2}, got)
	require.True(t, v.IsEmpty())
	require.Equal(t, 0, v.Cap())
	require.Empty(t, log.order)
}

func TestDrainBreakDropsRemaining(t *testing.T) {
	log := newDropLog()
	v := FromValues(log.items(0, 1, 2, 3))
	for o := range v.Drain() {
		if o.Unwrap().id == 1 {
			break
		}
	}
	require.Equal(t, []int{2, 3}, log.order)
	require.True(t, v.IsEmpty())

	v.PushValue(tracked{id: 8, log: log})
	v.Release()
	log.requireOnce(t, 2, 3, 8)
}
