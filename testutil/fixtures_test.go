package testutil

import (
	"testing"

	"github.com/comalice/groupx/internal/bitset"
)

func TestFixturesBuild(t *testing.T) {
	for _, f := range Fixtures() {
		t.Run(f.Name, func(t *testing.T) {
			g := Group(t, f.Name)
			if g.Name() != f.Name {
				t.Errorf("built %s, want %s", g.Name(), f.Name)
			}
			if err := CheckPartition(g.Order(), g.ConjugacyClasses()); err != nil {
				t.Errorf("conjugacy classes: %v", err)
			}
			for _, s := range []bool{true, false} {
				subs, _ := g.Subgroups()
				if err := CheckPartition(g.Order(), g.Cosets(subs[len(subs)/2].Members, s)); err != nil {
					t.Errorf("cosets: %v", err)
				}
			}
		})
	}
}

func TestCheckHomomorphism(t *testing.T) {
	g := Group(t, "Z_6")
	identity := make([]int, g.Order())
	for i := range identity {
		identity[i] = i
	}
	if err := CheckHomomorphism(g, g, identity); err != nil {
		t.Errorf("identity: %v", err)
	}
	constant := make([]int, g.Order())
	constant[0] = 1
	if err := CheckHomomorphism(g, g, constant); err == nil {
		t.Error("non-homomorphism accepted")
	}
	if err := CheckHomomorphism(g, g, identity[:2]); err == nil {
		t.Error("short map accepted")
	}
}

func TestCheckPartition(t *testing.T) {
	if err := CheckPartition(3, []bitset.BitSet{bitset.Of(3, 0, 1), bitset.Of(3, 1, 2)}); err == nil {
		t.Error("overlap accepted")
	}
	if err := CheckPartition(3, []bitset.BitSet{bitset.Of(3, 0)}); err == nil {
		t.Error("incomplete cover accepted")
	}
	if err := CheckPartition(3, []bitset.BitSet{bitset.Of(3, 0, 1, 2), bitset.New(3)}); err == nil {
		t.Error("empty set accepted")
	}
}
