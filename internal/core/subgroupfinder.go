package core

import (
	"slices"

	"github.com/comalice/groupx/internal/bitset"
)

// Subgroup is one entry of a group's subgroup list.
type Subgroup struct {
	Index      int           `json:"index" yaml:"index"`
	Members    bitset.BitSet `json:"members" yaml:"members"`
	Generators bitset.BitSet `json:"generators" yaml:"generators"`
	// Normal is derived from Members when the owning group is built.
	Normal bool `json:"normal" yaml:"normal"`
}

// Order returns the number of members.
func (s *Subgroup) Order() int { return s.Members.Count() }

// IsTrivial reports whether s holds only the identity.
func (s *Subgroup) IsTrivial() bool { return s.Members.Count() == 1 }

// IsWhole reports whether s is the whole group.
func (s *Subgroup) IsWhole() bool { return s.Members.Count() == s.Members.Len() }

// findSubgroups enumerates every subgroup of g. It starts from the cyclic
// subgroups and repeatedly joins each newly found subgroup with one more
// cyclic generator until no new subgroups appear. Every subgroup of a finite
// group is generated by finitely many cyclic subgroups, so the walk is
// complete.
func findSubgroups(g *Group) []*Subgroup {
	found := make(map[bitset.BitSet]*Subgroup)
	var all []*Subgroup
	add := func(members, gens bitset.BitSet) *Subgroup {
		if _, ok := found[members]; ok {
			return nil
		}
		s := &Subgroup{Members: members, Generators: gens}
		found[members] = s
		all = append(all, s)
		return s
	}

	// Cyclic subgroups; the first element reaching each one generates it.
	var cyclicReps []int
	var level []*Subgroup
	for a := 0; a < g.order; a++ {
		if s := add(g.closureOf([]int{a}), bitset.Of(g.order, a)); s != nil {
			if a != 0 {
				cyclicReps = append(cyclicReps, a)
				level = append(level, s)
			}
		}
	}

	for len(level) > 0 {
		var next []*Subgroup
		for _, h := range level {
			for _, a := range cyclicReps {
				if h.Members.Has(a) {
					continue
				}
				gens := h.Generators
				gens.Set(a)
				if s := add(g.closureOf(gens.Elements()), gens); s != nil {
					next = append(next, s)
				}
			}
		}
		level = next
	}

	slices.SortFunc(all, func(a, b *Subgroup) int {
		if d := a.Order() - b.Order(); d != 0 {
			return d
		}
		if a.Members.Less(b.Members) {
			return -1
		}
		if b.Members.Less(a.Members) {
			return 1
		}
		return 0
	})
	for i, s := range all {
		s.Index = i
	}
	return all
}
