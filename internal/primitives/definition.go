package primitives

import (
	"errors"
	"fmt"

	"github.com/comalice/groupx/internal/bitset"
)

// MaxOrder is the largest group order a Definition may describe.
const MaxOrder = bitset.MaxBits

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid group definition")

// Definition describes a finite group.
type Definition struct {
	Name           string   `json:"name" yaml:"name"`
	ShortName      string   `json:"shortName,omitempty" yaml:"shortName,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Representation []string `json:"representation,omitempty" yaml:"representation,omitempty"`
	MultTable      [][]int  `json:"multtable,omitempty" yaml:"multtable,omitempty"`
	// Permutations lists generators as images of 0..degree-1. Used only when
	// MultTable is empty; Resolve turns them into a table.
	Permutations [][]int `json:"permutations,omitempty" yaml:"permutations,omitempty"`
}

// Order returns the number of elements described by the table.
func (d *Definition) Order() int { return len(d.MultTable) }

// Resolve returns a definition with a multiplication table. Definitions that
// already have one are returned unchanged.
func (d *Definition) Resolve() (*Definition, error) {
	if len(d.MultTable) > 0 {
		return d, nil
	}
	if len(d.Permutations) == 0 {
		return nil, fmt.Errorf("%w: %q has neither multtable nor permutations", ErrInvalid, d.Name)
	}
	b := NewPermutationBuilder(d.Name, len(d.Permutations[0])).
		ShortName(d.ShortName).
		Description(d.Description)
	for _, p := range d.Permutations {
		b.Generator(p...)
	}
	resolved, err := b.Build()
	if err != nil {
		return nil, err
	}
	if len(d.Representation) == resolved.Order() {
		resolved.Representation = d.Representation
	}
	return resolved, nil
}

// Validate checks that the definition describes a group:
// - Non-empty name
// - Order between 1 and MaxOrder, square table, entries in range
// - Element 0 is the identity
// - Every row and column is a permutation
// - The operation is associative
// - Representation, when present, names every element
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	n := len(d.MultTable)
	if n == 0 {
		return fmt.Errorf("%w: %q has no multtable", ErrInvalid, d.Name)
	}
	if n > MaxOrder {
		return fmt.Errorf("%w: %q has order %d, maximum is %d", ErrInvalid, d.Name, n, MaxOrder)
	}
	if d.Representation != nil && len(d.Representation) != n {
		return fmt.Errorf("%w: %q names %d elements, order is %d", ErrInvalid, d.Name, len(d.Representation), n)
	}

	for i, row := range d.MultTable {
		if len(row) != n {
			return fmt.Errorf("%w: %q row %d has %d entries, want %d", ErrInvalid, d.Name, i, len(row), n)
		}
		seen := bitset.New(n)
		for j, v := range row {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: %q entry (%d,%d)=%d out of range", ErrInvalid, d.Name, i, j, v)
			}
			if seen.Has(v) {
				return fmt.Errorf("%w: %q row %d repeats element %d", ErrInvalid, d.Name, i, v)
			}
			seen.Set(v)
		}
	}
	for j := 0; j < n; j++ {
		seen := bitset.New(n)
		for i := 0; i < n; i++ {
			v := d.MultTable[i][j]
			if seen.Has(v) {
				return fmt.Errorf("%w: %q column %d repeats element %d", ErrInvalid, d.Name, j, v)
			}
			seen.Set(v)
		}
	}

	// Element 0 must be the identity.
	for i := 0; i < n; i++ {
		if d.MultTable[0][i] != i || d.MultTable[i][0] != i {
			return fmt.Errorf("%w: %q element 0 is not the identity", ErrInvalid, d.Name)
		}
	}

	m := d.MultTable
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			ab := m[a][b]
			for c := 0; c < n; c++ {
				if m[ab][c] != m[a][m[b][c]] {
					return fmt.Errorf("%w: %q is not associative at (%d,%d,%d)", ErrInvalid, d.Name, a, b, c)
				}
			}
		}
	}
	return nil
}

// ElementName returns the display name of element e.
func (d *Definition) ElementName(e int) string {
	if e >= 0 && e < len(d.Representation) {
		return d.Representation[e]
	}
	if e == 0 {
		return "e"
	}
	return fmt.Sprintf("g%d", e)
}
