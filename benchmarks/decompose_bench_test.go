package benchmarks

import (
	"context"
	"testing"

	"github.com/comalice/groupx/internal/lattice"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/solvable"
)

func BenchmarkDecompose(b *testing.B) {
	ctx := context.Background()
	lib := Library()
	for _, n := range []int{3, 4} {
		g := MustGroup(primitives.Symmetric(n))
		b.Run(Label("symmetric", n), func(b *testing.B) {
			for b.Loop() {
				if _, err := solvable.Decompose(ctx, g, lib); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
	a5 := MustGroup(primitives.Alternating(5))
	b.Run("alternating=5", func(b *testing.B) {
		for b.Loop() {
			if _, err := solvable.Decompose(ctx, a5, nil); err == nil {
				b.Fatal("A_5 decomposed")
			}
		}
	})
}

func BenchmarkOrganize(b *testing.B) {
	ctx := context.Background()
	for _, f := range Families() {
		for _, n := range f.Sizes {
			g := MustGroup(f.Build(n))
			b.Run(Label(f.Name, n), func(b *testing.B) {
				for b.Loop() {
					if _, err := lattice.Organize(ctx, g, lattice.Layout{}); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
