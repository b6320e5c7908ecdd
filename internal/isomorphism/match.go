package isomorphism

import (
	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
)

// Isomorphism returns a map φ with φ(a·b) = φ(a)·φ(b) from g onto h, or
// false if the groups are not isomorphic.
//
// The generators of g are assigned images one at a time, restricted to
// elements of h with the same element order and class size. After each
// assignment the partial map is extended over the Cayley graph of the
// generators chosen so far; any edge that disagrees, or any collision of
// images, prunes the branch.
func Isomorphism(g, h *core.Group) ([]int, bool) {
	if fingerprintOf(g) != fingerprintOf(h) {
		return nil, false
	}
	isomorphismChecks.Inc()

	gens := g.Generators()
	gClass := classSizes(g)
	hClass := classSizes(h)
	candidates := make([][]int, len(gens))
	for i, a := range gens {
		for b := 0; b < h.Order(); b++ {
			if h.ElementOrder(b) == g.ElementOrder(a) && hClass[b] == gClass[a] {
				candidates[i] = append(candidates[i], b)
			}
		}
	}

	images := make([]int, len(gens))
	var search func(j int) []int
	search = func(j int) []int {
		for _, c := range candidates[j] {
			images[j] = c
			phi, ok := extend(g, h, gens[:j+1], images[:j+1])
			if !ok {
				continue
			}
			if j == len(gens)-1 {
				return phi
			}
			if phi := search(j + 1); phi != nil {
				return phi
			}
		}
		return nil
	}
	phi := search(0)
	return phi, phi != nil
}

// extend walks the Cayley graph of <gens> from the identity, setting
// φ(x·s) = φ(x)·φ(s). It fails on any inconsistency or image collision.
// Unreached elements of g map to -1.
func extend(g, h *core.Group, gens, images []int) ([]int, bool) {
	phi := make([]int, g.Order())
	for i := range phi {
		phi[i] = -1
	}
	used := bitset.New(h.Order())
	phi[0] = 0
	used.Set(0)

	queue := []int{0}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for i, s := range gens {
			y := g.Multiply(x, s)
			want := h.Multiply(phi[x], images[i])
			switch {
			case phi[y] == want:
			case phi[y] != -1:
				return nil, false
			case used.Has(want):
				return nil, false
			default:
				phi[y] = want
				used.Set(want)
				queue = append(queue, y)
			}
		}
	}
	return phi, true
}

func classSizes(g *core.Group) []int {
	sizes := make([]int, g.Order())
	for _, c := range g.ConjugacyClasses() {
		n := c.Count()
		for e := range c.All() {
			sizes[e] = n
		}
	}
	return sizes
}
