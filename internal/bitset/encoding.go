package bitset

import "encoding/json"

// MarshalJSON encodes the set as its member list. The universe size is not
// encoded; consumers always know the group order.
func (b BitSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Elements())
}

// MarshalYAML encodes the set as its member list.
func (b BitSet) MarshalYAML() (any, error) {
	return b.Elements(), nil
}
