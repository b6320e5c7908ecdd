package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/primitives"
)

func mustDef(d *primitives.Definition, err error) *primitives.Definition {
	if err != nil {
		panic(err)
	}
	return d
}

func mustGroup(t testing.TB, d *primitives.Definition, opts ...Option) *Group {
	t.Helper()
	g, err := NewGroup(d, opts...)
	require.NoError(t, err)
	return g
}

func TestNewGroupRejectsInvalidDefinition(t *testing.T) {
	_, err := NewGroup(&primitives.Definition{Name: "bad", MultTable: [][]int{{1, 0}, {0, 1}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
}

func TestGroupProperties(t *testing.T) {
	z2 := mustDef(primitives.Cyclic(2))
	tests := []struct {
		name      string
		def       *primitives.Definition
		order     int
		abelian   bool
		solvable  bool
		simple    bool
		subgroups int
		classes   int
	}{
		{name: "Z_1", def: primitives.Trivial(), order: 1, abelian: true, solvable: true, subgroups: 1, classes: 1},
		{name: "Z_5", def: mustDef(primitives.Cyclic(5)), order: 5, abelian: true, solvable: true, simple: true, subgroups: 2, classes: 5},
		{name: "Z_6", def: mustDef(primitives.Cyclic(6)), order: 6, abelian: true, solvable: true, subgroups: 4, classes: 6},
		{name: "V_4", def: mustDef(primitives.DirectProduct(z2, z2)), order: 4, abelian: true, solvable: true, subgroups: 5, classes: 4},
		{name: "S_3", def: mustDef(primitives.Symmetric(3)), order: 6, solvable: true, subgroups: 6, classes: 3},
		{name: "Q_8", def: mustDef(primitives.Dicyclic(2)), order: 8, solvable: true, subgroups: 6, classes: 5},
		{name: "D_4", def: mustDef(primitives.Dihedral(4)), order: 8, solvable: true, subgroups: 10, classes: 5},
		{name: "A_4", def: mustDef(primitives.Alternating(4)), order: 12, solvable: true, subgroups: 10, classes: 4},
		{name: "S_4", def: mustDef(primitives.Symmetric(4)), order: 24, solvable: true, subgroups: 30, classes: 5},
		{name: "A_5", def: mustDef(primitives.Alternating(5)), order: 60, simple: true, subgroups: 59, classes: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGroup(tt.def)
			require.NoError(t, err)

			assert.Equal(t, tt.order, g.Order())
			assert.Equal(t, tt.abelian, g.IsAbelian(), "abelian")
			assert.Equal(t, tt.solvable, g.IsSolvable(), "solvable")
			assert.Equal(t, tt.simple, g.IsSimple(), "simple")
			assert.Len(t, g.ConjugacyClasses(), tt.classes)

			subs, err := g.Subgroups()
			require.NoError(t, err)
			require.Len(t, subs, tt.subgroups)
			assert.True(t, subs[0].IsTrivial())
			assert.True(t, subs[len(subs)-1].IsWhole())
			for i, s := range subs {
				assert.Equal(t, i, s.Index)
				if i > 0 {
					assert.LessOrEqual(t, subs[i-1].Order(), s.Order())
				}
				assert.Equal(t, s.Members, g.Closure(s.Generators), "generators of H_%d", i)
				assert.Zero(t, tt.order%s.Order(), "Lagrange")
			}
			assert.Equal(t, g.Everything(), g.Closure(bitset.Of(g.Order(), g.Generators()...)))
		})
	}
}

func TestElementData(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(3)))

	for a := 0; a < g.Order(); a++ {
		assert.Equal(t, 0, g.Multiply(a, g.Inverse(a)))
		assert.Equal(t, 0, g.Power(a, g.ElementOrder(a)))
	}
	classes := g.OrderClasses()
	require.Len(t, classes, 4)
	assert.Equal(t, 1, classes[1].Count())
	assert.Equal(t, 3, classes[2].Count())
	assert.Equal(t, 2, classes[3].Count())
	assert.True(t, classes[0].Empty())

	// Conjugacy classes are ordered by smallest member.
	cc := g.ConjugacyClasses()
	assert.Equal(t, g.Identity(), cc[0])
	for i := 1; i < len(cc); i++ {
		assert.Less(t, cc[i-1].First(), cc[i].First())
	}
}

func TestNormalSubgroupsOfS3(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(3)))
	subs, err := g.Subgroups()
	require.NoError(t, err)

	var normal []int
	for _, s := range subs {
		if s.Normal {
			normal = append(normal, s.Index)
		}
	}
	assert.Equal(t, []int{0, 4, 5}, normal)

	// A transposition subgroup is self-normalising.
	assert.Equal(t, subs[1].Members, g.Normalizer(subs[1].Members))
	assert.Equal(t, g.Everything(), g.Normalizer(subs[4].Members))
}

func TestCosets(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(3)))
	subs, _ := g.Subgroups()
	h := subs[1].Members

	for _, left := range []bool{true, false} {
		cosets := g.Cosets(h, left)
		require.Len(t, cosets, 3)
		assert.Equal(t, h, cosets[0])
		union := bitset.New(g.Order())
		for _, c := range cosets {
			assert.Equal(t, 2, c.Count())
			assert.True(t, bitset.Intersection(union, c).Empty())
			union = bitset.Union(union, c)
		}
		assert.Equal(t, g.Everything(), union)
	}

	// Left and right cosets differ for a non-normal subgroup.
	assert.NotEqual(t, g.Cosets(h, true), g.Cosets(h, false))
}

func TestProduct(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Cyclic(6)))
	got := g.Product(bitset.Of(6, 1, 2), bitset.Of(6, 0, 3))
	assert.Equal(t, []int{1, 2, 4, 5}, got.Elements())
}

func TestQuotientGroup(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(3)))

	q, err := g.QuotientGroup(4)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Group.Order())
	assert.True(t, q.Group.IsAbelian())
	for a := 0; a < g.Order(); a++ {
		for b := 0; b < g.Order(); b++ {
			assert.Equal(t, q.Map[g.Multiply(a, b)], q.Group.Multiply(q.Map[a], q.Map[b]))
		}
	}

	again, err := g.QuotientGroup(4)
	require.NoError(t, err)
	assert.Same(t, q, again, "quotients are cached")

	_, err = g.QuotientGroup(1)
	assert.ErrorIs(t, err, ErrNotNormal)
	_, err = g.QuotientGroup(17)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	trivial, err := g.QuotientGroup(0)
	require.NoError(t, err)
	assert.Equal(t, 6, trivial.Group.Order())
}

func TestWithoutSubgroups(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(3)), WithoutSubgroups())
	assert.False(t, g.HasSubgroups())

	_, err := g.Subgroups()
	assert.ErrorIs(t, err, ErrNoSubgroups)
	_, err = g.QuotientGroup(0)
	assert.ErrorIs(t, err, ErrNoSubgroups)
	_, err = g.SubgroupAsGroup(0)
	assert.ErrorIs(t, err, ErrNoSubgroups)
}

func TestSubgroupAsGroup(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Symmetric(4)))
	subs, _ := g.Subgroups()

	var a4 *Subgroup
	for _, s := range subs {
		if s.Order() == 12 {
			a4 = s
		}
	}
	require.NotNil(t, a4)

	e, err := g.SubgroupAsGroup(a4.Index)
	require.NoError(t, err)
	h := e.Group
	assert.Equal(t, 12, h.Order())
	assert.Equal(t, a4.Members.Elements(), e.Embedding)
	for a := 0; a < h.Order(); a++ {
		for b := 0; b < h.Order(); b++ {
			assert.Equal(t, e.Embedding[h.Multiply(a, b)], g.Multiply(e.Embedding[a], e.Embedding[b]))
		}
	}

	hs, err := h.Subgroups()
	require.NoError(t, err)
	assert.Len(t, hs, 10)
	normal := 0
	for _, s := range hs {
		if s.Normal {
			normal++
		}
	}
	assert.Equal(t, 3, normal, "A_4 has normal subgroups 1, V_4 and itself")
}

func TestPrimePower(t *testing.T) {
	tests := []struct {
		n    int
		p    int
		want bool
	}{
		{1, 0, false},
		{2, 2, true},
		{8, 2, true},
		{9, 3, true},
		{12, 2, false},
		{49, 7, true},
		{60, 2, false},
	}
	for _, tt := range tests {
		p, ok := PrimePower(tt.n)
		assert.Equal(t, tt.want, ok, "PrimePower(%d)", tt.n)
		if ok {
			assert.Equal(t, tt.p, p, "PrimePower(%d)", tt.n)
		}
	}
	assert.Equal(t, []int{2, 3, 5}, PrimeFactors(60))
	assert.Equal(t, 4, SylowOrder(60, 2))
}
