package vecoption

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLRoundTrip(t *testing.T) {
	v := FromOptions([]Option[int]{Some(1), None[int](), Some(3)})
	data, err := yaml.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, "- 1\n- null\n- 3\n", string(data))

	res := New[int]()
	res.PushValue(99)
	require.NoError(t, yaml.Unmarshal(data, res))
	require.True(t, Equal(v, res))
}

func TestYAMLInStruct(t *testing.T) {
	type doc struct {
		Name  string              `yaml:"name"`
		Slots *VecOption[float64] `yaml:"slots"`
	}
	in := doc{Name: "a", Slots: FromOptions([]Option[float64]{None[float64](), Some(2.5)})}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	var out doc
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Equal(t, "a", out.Name)
	require.True(t, Equal(in.Slots, out.Slots))
}

func TestJSONRoundTrip(t *testing.T) {
	v := FromOptions([]Option[string]{None[string](), Some("b")})
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `[null,"b"]`, string(data))

	res := New[string]()
	require.NoError(t, json.Unmarshal(data, res))
	require.True(t, Equal(v, res))

	require.Error(t, json.Unmarshal([]byte(`[1]`), res))
}
