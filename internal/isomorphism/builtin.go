package isomorphism

import "github.com/comalice/groupx/internal/primitives"

// Builtin returns the definitions of the standard library: every group of
// order at most 12, the cyclic and dihedral groups of orders 13 to 16, and
// S_4, A_5 and S_5.
func Builtin() []*primitives.Definition {
	must := func(d *primitives.Definition, err error) *primitives.Definition {
		if err != nil {
			panic(err)
		}
		return d
	}
	z := func(n int) *primitives.Definition { return must(primitives.Cyclic(n)) }
	d := func(n int) *primitives.Definition { return must(primitives.Dihedral(n)) }
	x := func(a, b *primitives.Definition) *primitives.Definition { return must(primitives.DirectProduct(a, b)) }

	return []*primitives.Definition{
		primitives.Trivial(),
		z(2), z(3),
		z(4), x(z(2), z(2)),
		z(5),
		z(6), must(primitives.Symmetric(3)),
		z(7),
		z(8), x(z(4), z(2)), x(x(z(2), z(2)), z(2)), d(4), must(primitives.Dicyclic(2)),
		z(9), x(z(3), z(3)),
		z(10), d(5),
		z(11),
		z(12), x(z(6), z(2)), must(primitives.Alternating(4)), d(6), must(primitives.Dicyclic(3)),
		z(13),
		z(14), d(7),
		z(15),
		z(16), d(8),
		must(primitives.Symmetric(4)),
		must(primitives.Alternating(5)),
		must(primitives.Symmetric(5)),
	}
}
