// Package testutil provides group fixtures and structural assertions shared
// by tests across packages.
package testutil

import (
	"fmt"
	"testing"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
)

// Fixture names a group used across test suites.
type Fixture struct {
	Name string
	Def  func() (*primitives.Definition, error)
}

// Fixtures covers abelian, solvable non-abelian and non-solvable groups.
func Fixtures() []Fixture {
	z2 := func() (*primitives.Definition, error) { return primitives.Cyclic(2) }
	return []Fixture{
		{"Z_1", func() (*primitives.Definition, error) { return primitives.Trivial(), nil }},
		{"Z_6", func() (*primitives.Definition, error) { return primitives.Cyclic(6) }},
		{"Z_2 x Z_2", func() (*primitives.Definition, error) {
			a, err := z2()
			if err != nil {
				return nil, err
			}
			return primitives.DirectProduct(a, a)
		}},
		{"S_3", func() (*primitives.Definition, error) { return primitives.Symmetric(3) }},
		{"Q_8", func() (*primitives.Definition, error) { return primitives.Dicyclic(2) }},
		{"D_4", func() (*primitives.Definition, error) { return primitives.Dihedral(4) }},
		{"A_4", func() (*primitives.Definition, error) { return primitives.Alternating(4) }},
		{"S_4", func() (*primitives.Definition, error) { return primitives.Symmetric(4) }},
		{"A_5", func() (*primitives.Definition, error) { return primitives.Alternating(5) }},
	}
}

// Group builds the fixture with the given name.
func Group(t testing.TB, name string, opts ...core.Option) *core.Group {
	t.Helper()
	for _, f := range Fixtures() {
		if f.Name != name {
			continue
		}
		d, err := f.Def()
		if err != nil {
			t.Fatalf("fixture %s: %v", name, err)
		}
		g, err := core.NewGroup(d, opts...)
		if err != nil {
			t.Fatalf("fixture %s: %v", name, err)
		}
		return g
	}
	t.Fatalf("no fixture named %q", name)
	return nil
}

// CheckHomomorphism returns an error unless phi(a·b) = phi(a)·phi(b) for
// every a, b in src.
func CheckHomomorphism(src, dst *core.Group, phi []int) error {
	if len(phi) != src.Order() {
		return fmt.Errorf("map has %d images for a group of order %d", len(phi), src.Order())
	}
	for a := 0; a < src.Order(); a++ {
		for b := 0; b < src.Order(); b++ {
			if got, want := phi[src.Multiply(a, b)], dst.Multiply(phi[a], phi[b]); got != want {
				return fmt.Errorf("phi(%d·%d) = %d, want %d", a, b, got, want)
			}
		}
	}
	return nil
}

// CheckPartition returns an error unless sets are non-empty, pairwise
// disjoint and cover 0..n-1.
func CheckPartition(n int, sets []bitset.BitSet) error {
	seen := bitset.New(n)
	for i, s := range sets {
		if s.Empty() {
			return fmt.Errorf("set %d is empty", i)
		}
		if !bitset.Intersection(seen, s).Empty() {
			return fmt.Errorf("set %d overlaps an earlier set", i)
		}
		seen = bitset.Union(seen, s)
	}
	if seen.Count() != n {
		return fmt.Errorf("sets cover %d of %d elements", seen.Count(), n)
	}
	return nil
}
