package solvable

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/isomorphism"
	"github.com/comalice/groupx/internal/primitives"
)

var (
	libOnce sync.Once
	libVal  *isomorphism.Library
	libErr  error
)

func library(t testing.TB) *isomorphism.Library {
	t.Helper()
	libOnce.Do(func() {
		libVal, libErr = isomorphism.Default(context.Background())
	})
	require.NoError(t, libErr)
	return libVal
}

func group(t testing.TB, d *primitives.Definition, opts ...core.Option) *core.Group {
	t.Helper()
	g, err := core.NewGroup(d, opts...)
	require.NoError(t, err)
	return g
}

func TestDecomposeChains(t *testing.T) {
	lib := library(t)
	tests := []struct {
		name  string
		group *core.Group
		chain string
	}{
		{name: "trivial", group: group(t, primitives.Trivial()), chain: "Z_1"},
		{name: "cyclic", group: group(t, mustDef(primitives.Cyclic(6))), chain: "Z_1 ⊲ Z_6"},
		{name: "symmetric 3", group: group(t, mustDef(primitives.Symmetric(3))), chain: "Z_1 ⊲ Z_3 ⊲ S_3"},
		{name: "quaternion", group: group(t, mustDef(primitives.Dicyclic(2))), chain: "Z_1 ⊲ Z_2 ⊲ Q_8"},
		{name: "symmetric 4", group: group(t, mustDef(primitives.Symmetric(4))), chain: "Z_1 ⊲ Z_2 x Z_2 ⊲ A_4 ⊲ S_4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decompose(context.Background(), tt.group, lib, WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)
			assert.Equal(t, tt.chain, d.Chain())
			assertValidDecomposition(t, tt.group, d)
		})
	}
}

func TestDecomposeS3Links(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)))
	d, err := Decompose(context.Background(), g, library(t))
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())

	bottom, top := d.Links[0], d.Links[1]
	assert.Equal(t, "Z_3", bottom.IsomorphicTo)
	assert.Equal(t, -1, bottom.SubgroupIndex)
	assert.Same(t, g, top.Group)
	assert.Equal(t, 4, top.SubgroupIndex)
	assert.Equal(t, "Z_3", top.SubgroupIsomorphicTo)
	assert.Equal(t, "Z_2", top.QuotientIsomorphicTo)
}

func TestDecomposeWithoutLibrary(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)))
	d, err := Decompose(context.Background(), g, nil)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Empty(t, d.Links[0].IsomorphicTo)
	assert.Empty(t, d.Links[1].QuotientIsomorphicTo)
	assert.Equal(t, "Z_1 ⊲ H_4 of S_3 ⊲ S_3", d.Chain())
}

func TestDecomposeFailures(t *testing.T) {
	lib := library(t)

	a5 := group(t, mustDef(primitives.Alternating(5)))
	_, err := Decompose(context.Background(), a5, lib)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotSolvable)
	var se *SearchError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, -1, se.SubgroupIndex, "A_5 has no candidate subgroup")

	s5 := group(t, mustDef(primitives.Symmetric(5)))
	_, err = Decompose(context.Background(), s5, lib)
	require.True(t, errors.As(err, &se))
	subs, _ := s5.Subgroups()
	require.GreaterOrEqual(t, se.SubgroupIndex, 0)
	assert.Equal(t, 60, subs[se.SubgroupIndex].Order(), "failure recorded at A_5")
}

func TestDecomposeRequiresSubgroups(t *testing.T) {
	g := group(t, mustDef(primitives.Symmetric(3)), core.WithoutSubgroups())
	_, err := Decompose(context.Background(), g, nil)
	assert.ErrorIs(t, err, core.ErrNoSubgroups)

	_, err = Analyze(context.Background(), g, nil)
	assert.ErrorIs(t, err, core.ErrNoSubgroups)

	// Abelian groups never need the subgroup list.
	z4 := group(t, mustDef(primitives.Cyclic(4)), core.WithoutSubgroups())
	d, err := Decompose(context.Background(), z4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
}

func TestEverySolvableLibraryGroupDecomposes(t *testing.T) {
	lib := library(t)
	for _, g := range lib.Groups() {
		t.Run(g.Name(), func(t *testing.T) {
			d, err := Decompose(context.Background(), g, lib)
			if !g.IsSolvable() {
				assert.ErrorIs(t, err, ErrNotSolvable)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assertValidDecomposition(t, g, d)
		})
	}
}

// assertValidDecomposition checks that each link sits in the next as the
// recorded normal subgroup with an abelian quotient.
func assertValidDecomposition(t *testing.T, g *core.Group, d *Decomposition) {
	t.Helper()
	require.NotEmpty(t, d.Links)
	assert.Same(t, g, d.Links[d.Len()-1].Group)
	assert.True(t, d.Links[0].Group.IsAbelian())
	if g.IsAbelian() {
		assert.Equal(t, 1, d.Len())
		return
	}
	assert.GreaterOrEqual(t, d.Len(), 2)
	for i := 1; i < d.Len(); i++ {
		parent := d.Links[i].Group
		sub, err := parent.Subgroup(d.Links[i].SubgroupIndex)
		require.NoError(t, err)
		assert.True(t, sub.Normal)
		assert.Equal(t, d.Links[i-1].Order, sub.Order())
		q, err := parent.QuotientGroup(sub.Index)
		require.NoError(t, err)
		assert.True(t, q.Group.IsAbelian())
	}
}
