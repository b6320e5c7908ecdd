// Package core provides the group tier of groupx.
// This includes the Group value, subgroup enumeration, normality, cosets,
// quotient groups and the Library contract used to name groups.
// Dependencies: internal/bitset, internal/primitives.
package core

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/primitives"
)

// Option applies configuration to a Group via the functional options pattern.
type Option func(*Group)

// Group is a finite group given by its multiplication table. Element 0 is the
// identity. A Group is immutable once NewGroup returns, apart from its
// internal quotient cache, and is safe for concurrent use.
type Group struct {
	def    *primitives.Definition
	order  int
	mult   [][]int
	logger *zap.Logger

	inverses         []int
	elementOrders    []int
	orderClasses     []bitset.BitSet
	conjugacyClasses []bitset.BitSet
	generators       []int

	abelian  bool
	solvable bool
	simple   bool

	skipSubgroups bool
	subgroups     []*Subgroup

	cache *derivedCache
}

// NewGroup validates def and builds a Group from it. Definitions given by
// permutations are resolved first.
func NewGroup(def *primitives.Definition, opts ...Option) (*Group, error) {
	resolved, err := def.Resolve()
	if err != nil {
		return nil, err
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	g := &Group{
		def:    resolved,
		order:  resolved.Order(),
		mult:   resolved.MultTable,
		logger: zap.NewNop(),
		cache:  newDerivedCache(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.computeElementData()
	g.abelian = g.computeAbelian()
	g.solvable = g.computeSolvable()
	g.simple = g.computeSimple()
	if !g.skipSubgroups && g.subgroups == nil {
		g.subgroups = findSubgroups(g)
	}
	if g.subgroups != nil {
		g.markNormal()
	}

	g.logger.Debug("group built",
		zap.String("name", g.Name()),
		zap.Int("order", g.order),
		zap.Int("subgroups", len(g.subgroups)),
		zap.Bool("abelian", g.abelian),
		zap.Bool("solvable", g.solvable),
	)
	return g, nil
}

// Name returns the group's name.
func (g *Group) Name() string { return g.def.Name }

// ShortName returns the short name, falling back to Name.
func (g *Group) ShortName() string {
	if g.def.ShortName != "" {
		return g.def.ShortName
	}
	return g.def.Name
}

// Definition returns the resolved definition the group was built from.
func (g *Group) Definition() *primitives.Definition { return g.def }

func (g *Group) Order() int { return g.order }

// Multiply returns a·b.
func (g *Group) Multiply(a, b int) int { return g.mult[a][b] }

// Inverse returns a⁻¹.
func (g *Group) Inverse(a int) int { return g.inverses[a] }

// Power returns a^k for k >= 0.
func (g *Group) Power(a, k int) int {
	r := 0
	for ; k > 0; k-- {
		r = g.mult[r][a]
	}
	return r
}

// Conjugate returns x·a·x⁻¹.
func (g *Group) Conjugate(a, x int) int {
	return g.mult[g.mult[x][a]][g.inverses[x]]
}

// ElementOrder returns the order of element a.
func (g *Group) ElementOrder(a int) int { return g.elementOrders[a] }

// ElementOrders returns the order of every element.
func (g *Group) ElementOrders() []int { return slices.Clone(g.elementOrders) }

// OrderClasses returns the elements grouped by element order. Index k holds
// the elements of order k; indices with no elements hold empty sets.
func (g *Group) OrderClasses() []bitset.BitSet { return slices.Clone(g.orderClasses) }

// ConjugacyClasses returns the conjugacy classes ordered by smallest member.
func (g *Group) ConjugacyClasses() []bitset.BitSet { return slices.Clone(g.conjugacyClasses) }

// Generators returns a generating set for the whole group.
func (g *Group) Generators() []int { return slices.Clone(g.generators) }

func (g *Group) IsAbelian() bool  { return g.abelian }
func (g *Group) IsSolvable() bool { return g.solvable }
func (g *Group) IsSimple() bool   { return g.simple }

// ElementName returns the display name of element e.
func (g *Group) ElementName(e int) string { return g.def.ElementName(e) }

// ElementNames returns the display names of the members of s.
func (g *Group) ElementNames(s bitset.BitSet) []string {
	out := make([]string, 0, s.Count())
	for e := range s.All() {
		out = append(out, g.def.ElementName(e))
	}
	return out
}

// Everything returns the set of all elements.
func (g *Group) Everything() bitset.BitSet { return bitset.Full(g.order) }

// Identity returns the set holding only the identity.
func (g *Group) Identity() bitset.BitSet { return bitset.Of(g.order, 0) }

// HasSubgroups reports whether the subgroup list was computed.
func (g *Group) HasSubgroups() bool { return g.subgroups != nil }

// Subgroups returns the subgroup list sorted by order, then by members. The
// trivial subgroup is first and the whole group last. It returns
// ErrNoSubgroups if the group was built WithoutSubgroups.
func (g *Group) Subgroups() ([]*Subgroup, error) {
	if g.subgroups == nil {
		return nil, fmt.Errorf("%s: %w", g.Name(), ErrNoSubgroups)
	}
	return g.subgroups, nil
}

// Subgroup returns subgroup i.
func (g *Group) Subgroup(i int) (*Subgroup, error) {
	if g.subgroups == nil {
		return nil, fmt.Errorf("%s: %w", g.Name(), ErrNoSubgroups)
	}
	if i < 0 || i >= len(g.subgroups) {
		return nil, fmt.Errorf("%s subgroup %d: %w", g.Name(), i, ErrIndexOutOfRange)
	}
	return g.subgroups[i], nil
}

// SubgroupIndex returns the index of the subgroup with the given members, or
// -1 if members is not a subgroup.
func (g *Group) SubgroupIndex(members bitset.BitSet) int {
	for _, s := range g.subgroups {
		if s.Members.Equal(members) {
			return s.Index
		}
	}
	return -1
}

// Closure returns the subgroup generated by s.
func (g *Group) Closure(s bitset.BitSet) bitset.BitSet {
	return g.closureOf(s.Elements())
}

// IsNormal reports whether the subgroup h is normal in g.
func (g *Group) IsNormal(h bitset.BitSet) bool {
	for _, x := range g.generators {
		for a := range h.All() {
			if !h.Has(g.Conjugate(a, x)) {
				return false
			}
		}
	}
	return true
}

// ConjugateSet returns x·s·x⁻¹.
func (g *Group) ConjugateSet(s bitset.BitSet, x int) bitset.BitSet {
	r := bitset.New(g.order)
	for a := range s.All() {
		r.Set(g.Conjugate(a, x))
	}
	return r
}

// Normalizer returns {x : x·h·x⁻¹ = h}.
func (g *Group) Normalizer(h bitset.BitSet) bitset.BitSet {
	r := bitset.New(g.order)
	for x := 0; x < g.order; x++ {
		if g.ConjugateSet(h, x).Equal(h) {
			r.Set(x)
		}
	}
	return r
}

// Cosets partitions the group into the left (x·h) or right (h·x) cosets of
// h, ordered by their smallest member. The first coset is h itself.
func (g *Group) Cosets(h bitset.BitSet, left bool) []bitset.BitSet {
	covered := bitset.New(g.order)
	var out []bitset.BitSet
	for x := 0; x < g.order; x++ {
		if covered.Has(x) {
			continue
		}
		c := bitset.New(g.order)
		for a := range h.All() {
			if left {
				c.Set(g.mult[x][a])
			} else {
				c.Set(g.mult[a][x])
			}
		}
		covered = bitset.Union(covered, c)
		out = append(out, c)
	}
	return out
}

// Product returns {a·b : a ∈ s, b ∈ t}.
func (g *Group) Product(s, t bitset.BitSet) bitset.BitSet {
	r := bitset.New(g.order)
	for a := range s.All() {
		row := g.mult[a]
		for b := range t.All() {
			r.Set(row[b])
		}
	}
	return r
}

func (g *Group) String() string {
	return fmt.Sprintf("%s (order %d)", g.Name(), g.order)
}
