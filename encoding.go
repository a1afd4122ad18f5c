package vecoption

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// pointers returns one pointer per slot, nil for absent ones. Present
// values are copied so the result does not alias storage.
func (v *VecOption[T]) pointers() []*T {
	out := make([]*T, v.Len())
	for i := range out {
		if v.flag.Get(i) {
			x := *v.data.At(i)
			out[i] = &x
		}
	}
	return out
}

func (v *VecOption[T]) resetFrom(ps []*T) {
	v.Clear()
	v.Reserve(len(ps))
	for _, p := range ps {
		v.Push(FromPtr(p))
	}
}

// MarshalYAML encodes v as a sequence with null for absent slots.
func (v *VecOption[T]) MarshalYAML() (any, error) {
	return v.pointers(), nil
}

// UnmarshalYAML replaces the content of v with a decoded sequence.
func (v *VecOption[T]) UnmarshalYAML(node *yaml.Node) error {
	var ps []*T
	if err := node.Decode(&ps); err != nil {
		return err
	}
	v.resetFrom(ps)
	return nil
}

// MarshalJSON encodes v as an array with null for absent slots.
func (v *VecOption[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.pointers())
}

// UnmarshalJSON replaces the content of v with a decoded array.
func (v *VecOption[T]) UnmarshalJSON(b []byte) error {
	var ps []*T
	if err := json.Unmarshal(b, &ps); err != nil {
		return err
	}
	v.resetFrom(ps)
	return nil
}
