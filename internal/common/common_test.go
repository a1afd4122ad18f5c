package common

import (
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPointers(t *testing.T) {
	type flat struct {
		A int32
		B [4]float64
	}
	type boxed struct {
		A int
		S string
	}
	cases := []struct {
		v    any
		want bool
	}{
		{int64(1), false},
		{flat{}, false},
		{[0]*int{}, false},
		{"x", true},
		{boxed{}, true},
		{[]int{}, true},
		{map[int]int{}, true},
		{new(int), true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HasPointers(reflect.TypeOf(c.v)), "%T", c.v)
	}
	assert.True(t, HasPointers(nil))
}

func TestVarUintRoundTrip(t *testing.T) {
	condition := func(x uint64) bool {
		b := WriteVarUint(nil, x)
		got, n := ReadVarUint(b)
		return got == x && n == len(b)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))

	_, n := ReadVarUint([]byte{0x80, 0x80})
	require.Zero(t, n)
}

func TestFixedRoundTrip(t *testing.T) {
	values := []any{
		true, int8(-3), uint8(200), int16(-300), uint16(60000),
		int32(-70000), uint32(4000000000), int64(-1 << 40), uint64(1 << 63),
		float32(1.5), float64(-2.25), int(-12), uint(12),
	}
	for _, v := range values {
		rv := reflect.ValueOf(v)
		k := rv.Kind()
		require.True(t, IsFixedKind(k))
		b := AppendFixed(nil, rv, k)
		require.Len(t, b, FixedSize(k))
		out := reflect.New(rv.Type()).Elem()
		SetFixed(out, b, k)
		require.Equal(t, v, out.Interface())
	}
	require.False(t, IsFixedKind(reflect.String))
	require.Equal(t, -1, FixedSize(reflect.String))
}
