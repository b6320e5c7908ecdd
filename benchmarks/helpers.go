// Package benchmarks measures the expensive group computations: subgroup
// enumeration, isomorphism lookups, decomposition search and lattice
// organization.
package benchmarks

import (
	"context"
	"fmt"
	"sync"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/isomorphism"
	"github.com/comalice/groupx/internal/primitives"
)

// Family builds a named family member for benchmark tables.
type Family struct {
	Name  string
	Build func(n int) (*primitives.Definition, error)
	Sizes []int
}

// Families lists the benchmarked families and their parameters.
func Families() []Family {
	return []Family{
		{"cyclic", primitives.Cyclic, []int{12, 60, 240}},
		{"dihedral", primitives.Dihedral, []int{6, 30, 60}},
		{"symmetric", primitives.Symmetric, []int{3, 4, 5}},
		{"alternating", primitives.Alternating, []int{4, 5}},
	}
}

// Label formats a sub-benchmark name.
func Label(family string, n int) string {
	return fmt.Sprintf("%s=%d", family, n)
}

// MustGroup builds a group or panics.
func MustGroup(d *primitives.Definition, err error) *core.Group {
	if err != nil {
		panic(err)
	}
	g, err := core.NewGroup(d)
	if err != nil {
		panic(err)
	}
	return g
}

var (
	libOnce sync.Once
	lib     *isomorphism.Library
)

// Library returns the builtin library, loaded once.
func Library() *isomorphism.Library {
	libOnce.Do(func() {
		var err error
		lib, err = isomorphism.Default(context.Background())
		if err != nil {
			panic(err)
		}
	})
	return lib
}
