// Helper functions for group precomputation.
// Placed in separate file to organize code.

package core

import (
	"cmp"
	"slices"

	"github.com/comalice/groupx/internal/bitset"
)

// computeElementData fills inverses, element orders, order classes,
// conjugacy classes and generators.
func (g *Group) computeElementData() {
	n := g.order
	g.inverses = make([]int, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if g.mult[a][b] == 0 {
				g.inverses[a] = b
				break
			}
		}
	}

	g.elementOrders = make([]int, n)
	maxOrder := 1
	for a := 0; a < n; a++ {
		k, x := 1, a
		for x != 0 {
			x = g.mult[x][a]
			k++
		}
		g.elementOrders[a] = k
		maxOrder = max(maxOrder, k)
	}
	g.orderClasses = make([]bitset.BitSet, maxOrder+1)
	for k := range g.orderClasses {
		g.orderClasses[k] = bitset.New(n)
	}
	for a, k := range g.elementOrders {
		g.orderClasses[k].Set(a)
	}

	assigned := bitset.New(n)
	for a := 0; a < n; a++ {
		if assigned.Has(a) {
			continue
		}
		class := bitset.New(n)
		for x := 0; x < n; x++ {
			class.Set(g.Conjugate(a, x))
		}
		assigned = bitset.Union(assigned, class)
		g.conjugacyClasses = append(g.conjugacyClasses, class)
	}

	g.generators = g.greedyGenerators()
}

// greedyGenerators picks elements of largest order first until they
// generate the whole group. The trivial group is generated by {0}.
func (g *Group) greedyGenerators() []int {
	if g.order == 1 {
		return []int{0}
	}
	candidates := make([]int, 0, g.order-1)
	for a := 1; a < g.order; a++ {
		candidates = append(candidates, a)
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		return cmp.Compare(g.elementOrders[b], g.elementOrders[a])
	})

	var gens []int
	span := g.Identity()
	for _, a := range candidates {
		if span.Has(a) {
			continue
		}
		gens = append(gens, a)
		span = g.closureOf(gens)
		if span.Count() == g.order {
			break
		}
	}
	return gens
}

// closureOf returns the subgroup generated by gens, found by breadth-first
// multiplication from the identity.
func (g *Group) closureOf(gens []int) bitset.BitSet {
	members := g.Identity()
	queue := []int{0}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		row := g.mult[x]
		for _, s := range gens {
			y := row[s]
			if !members.Has(y) {
				members.Set(y)
				queue = append(queue, y)
			}
		}
	}
	return members
}

func (g *Group) computeAbelian() bool {
	for a := 0; a < g.order; a++ {
		for b := a + 1; b < g.order; b++ {
			if g.mult[a][b] != g.mult[b][a] {
				return false
			}
		}
	}
	return true
}

// commutatorSubgroup returns [s, s] for a subgroup s.
func (g *Group) commutatorSubgroup(s bitset.BitSet) bitset.BitSet {
	seen := bitset.New(g.order)
	var comms []int
	for a := range s.All() {
		for b := range s.All() {
			c := g.mult[g.mult[a][b]][g.mult[g.inverses[a]][g.inverses[b]]]
			if !seen.Has(c) {
				seen.Set(c)
				comms = append(comms, c)
			}
		}
	}
	return g.closureOf(comms)
}

// computeSolvable walks the derived series until it stabilises.
func (g *Group) computeSolvable() bool {
	d := g.Everything()
	for {
		next := g.commutatorSubgroup(d)
		if next.Equal(d) {
			return d.Count() == 1
		}
		d = next
	}
}

// computeSimple reports whether the normal closure of every nontrivial
// conjugacy class is the whole group.
func (g *Group) computeSimple() bool {
	if g.order == 1 {
		return false
	}
	for _, class := range g.conjugacyClasses {
		if class.Has(0) {
			continue
		}
		if g.Closure(class).Count() != g.order {
			return false
		}
	}
	return true
}

func (g *Group) markNormal() {
	for _, s := range g.subgroups {
		s.Normal = g.IsNormal(s.Members)
	}
}
