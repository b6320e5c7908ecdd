package lattice

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
)

func group(t testing.TB, d *primitives.Definition, opts ...core.Option) *core.Group {
	t.Helper()
	g, err := core.NewGroup(d, opts...)
	require.NoError(t, err)
	return g
}

func TestOrganizeS3(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)))
	l, err := Organize(context.Background(), g, Layout{})
	require.NoError(t, err)

	if diff := cmp.Diff([][]int{{0}, {1, 2, 3}, {4}, {5}}, l.Tiers); diff != "" {
		t.Errorf("tiers mismatch (-want +got):\n%s", diff)
	}
	wantChains := [][]int{
		{0, 1, Empty, 5},
		{0, 2, Empty, 5},
		{0, 3, Empty, 5},
		{0, Empty, 4, 5},
	}
	if diff := cmp.Diff(wantChains, l.Chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
	wantCovers := []Cover{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 5}, {2, 5}, {3, 5}, {4, 5},
	}
	if diff := cmp.Diff(wantCovers, l.Covers); diff != "" {
		t.Errorf("covers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, DefaultLayout(), l.Layout)
}

func TestPositionsS3(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)))
	l, err := Organize(context.Background(), g, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, l.Positions, 6)

	type xy struct{ X, Y float64 }
	got := map[int]xy{}
	for _, p := range l.Positions {
		got[p.Subgroup] = xy{p.X, p.Y}
		assert.Equal(t, 96.0, p.W)
		assert.Equal(t, 96.0, p.H)
	}
	want := map[int]xy{
		0: {242, 682},
		1: {62, 502},
		2: {182, 502},
		3: {302, 502},
		4: {422, 322},
		5: {242, 142},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	subs, _ := g.Subgroups()
	assert.Equal(t, subs[4].Members, l.Positions[4].Highlight)
}

func TestChainsCoverEverySubgroupOnce(t *testing.T) {
	z2, _ := primitives.Cyclic(2)
	tests := []struct {
		name string
		def  *primitives.Definition
	}{
		{name: "trivial", def: primitives.Trivial()},
		{name: "prime", def: mustDef(primitives.Cyclic(7))},
		{name: "klein", def: mustDef(primitives.DirectProduct(z2, z2))},
		{name: "dihedral", def: mustDef(primitives.Dihedral(4))},
		{name: "symmetric 4", def: mustDef(primitives.Symmetric(4))},
		{name: "alternating 5", def: mustDef(primitives.Alternating(5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := group(t, tt.def)
			l, err := Organize(context.Background(), g, Layout{})
			require.NoError(t, err)

			subs, _ := g.Subgroups()
			top := len(subs) - 1
			seen := make(map[int]int)
			for _, c := range l.Chains {
				require.Len(t, c, len(l.Tiers))
				assert.Equal(t, 0, c[0])
				assert.Equal(t, top, c[len(c)-1])
				if len(c) < 2 {
					continue
				}
				for slot, i := range c[1 : len(c)-1] {
					if i == Empty {
						continue
					}
					seen[i]++
					assert.Contains(t, l.Tiers[slot+1], i, "subgroup %d placed in its own tier", i)
				}
			}
			for i := 1; i < top; i++ {
				assert.Equal(t, 1, seen[i], "subgroup %d", i)
			}
		})
	}
}

func TestCoversAreMaximal(t *testing.T) {
	g := group(t, mustDef(primitives.Dihedral(4)))
	subs, _ := g.Subgroups()
	for _, c := range Covers(subs) {
		h, k := subs[c.From], subs[c.To]
		assert.True(t, h.Members.IsSubsetOf(k.Members))
		assert.Less(t, h.Order(), k.Order())
		// In a 2-group every maximal subgroup chain step has index 2.
		assert.Equal(t, 2*h.Order(), k.Order())
	}
}

func TestOrganizeRequiresSubgroups(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)), core.WithoutSubgroups())
	_, err := Organize(context.Background(), g, Layout{})
	assert.ErrorIs(t, err, core.ErrNoSubgroups)
}

func mustDef(d *primitives.Definition, err error) *primitives.Definition {
	if err != nil {
		panic(err)
	}
	return d
}
