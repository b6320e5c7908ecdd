package core

import (
	"fmt"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/primitives"
)

// Quotient is g/N for a normal subgroup N.
type Quotient struct {
	Group *Group
	// Cosets[k] is the coset that is element k of Group. Cosets[0] is N.
	Cosets []bitset.BitSet
	// Map sends each element of the parent group to its coset.
	Map []int
}

// Embedded is a subgroup renumbered as a standalone group.
type Embedded struct {
	Group *Group
	// Embedding sends each element of Group to the parent element it stands for.
	Embedding []int
}

// QuotientGroup returns g/N for N = subgroup i. The result is cached.
func (g *Group) QuotientGroup(i int) (*Quotient, error) {
	s, err := g.Subgroup(i)
	if err != nil {
		return nil, err
	}
	if !s.Normal {
		return nil, fmt.Errorf("%s subgroup %d: %w", g.Name(), i, ErrNotNormal)
	}
	if q, ok := g.cache.quotient(i); ok {
		return q, nil
	}
	q, err := g.quotientBy(s.Members, fmt.Sprintf("%s/H_%d", g.Name(), i))
	if err != nil {
		return nil, err
	}
	return g.cache.storeQuotient(i, q), nil
}

// quotientBy builds g/n without checking normality.
func (g *Group) quotientBy(n bitset.BitSet, name string) (*Quotient, error) {
	cosets := g.Cosets(n, true)
	m := make([]int, g.order)
	for k, c := range cosets {
		for e := range c.All() {
			m[e] = k
		}
	}
	reps := make([]int, len(cosets))
	names := make([]string, len(cosets))
	for k, c := range cosets {
		reps[k] = c.First()
		names[k] = g.ElementName(reps[k]) + "N"
	}
	names[0] = "N"

	table := make([][]int, len(cosets))
	for a := range cosets {
		table[a] = make([]int, len(cosets))
		for b := range cosets {
			table[a][b] = m[g.mult[reps[a]][reps[b]]]
		}
	}

	qg, err := NewGroup(&primitives.Definition{
		Name:           name,
		Representation: names,
		MultTable:      table,
	}, WithLogger(g.logger), WithoutSubgroups())
	if err != nil {
		return nil, fmt.Errorf("quotient %s: %w", name, err)
	}
	return &Quotient{Group: qg, Cosets: cosets, Map: m}, nil
}

// SubgroupAsGroup renumbers subgroup i as a standalone group whose element k
// is the k-th smallest member. The subgroup list of the result is derived
// from the parent's, so it keeps the same relative order. The result is
// cached.
func (g *Group) SubgroupAsGroup(i int) (*Embedded, error) {
	s, err := g.Subgroup(i)
	if err != nil {
		return nil, err
	}
	if e, ok := g.cache.embedding(i); ok {
		return e, nil
	}

	embedding := s.Members.Elements()
	local := make(map[int]int, len(embedding))
	for k, e := range embedding {
		local[e] = k
	}
	n := len(embedding)
	table := make([][]int, n)
	names := make([]string, n)
	for a, ea := range embedding {
		names[a] = g.ElementName(ea)
		table[a] = make([]int, n)
		for b, eb := range embedding {
			table[a][b] = local[g.mult[ea][eb]]
		}
	}

	mapSet := func(set bitset.BitSet) bitset.BitSet {
		r := bitset.New(n)
		for e := range set.All() {
			r.Set(local[e])
		}
		return r
	}
	var subs []*Subgroup
	for _, t := range g.subgroups {
		if !t.Members.IsSubsetOf(s.Members) {
			continue
		}
		subs = append(subs, &Subgroup{
			Index:      len(subs),
			Members:    mapSet(t.Members),
			Generators: mapSet(t.Generators),
		})
	}

	name := s.groupName(g, i)
	sg, err := NewGroup(&primitives.Definition{
		Name:           name,
		Representation: names,
		MultTable:      table,
	}, WithLogger(g.logger), withSubgroups(subs))
	if err != nil {
		return nil, fmt.Errorf("subgroup %s: %w", name, err)
	}
	return g.cache.storeEmbedding(i, &Embedded{Group: sg, Embedding: embedding}), nil
}

func (s *Subgroup) groupName(g *Group, i int) string {
	switch {
	case s.IsWhole():
		return g.Name()
	case s.IsTrivial():
		return "Z_1"
	}
	return fmt.Sprintf("H_%d of %s", i, g.Name())
}
