// Package primitives includes a fluent builder for permutation groups.
package primitives

import (
	"fmt"
	"strconv"
	"strings"
)

// PermutationBuilder builds a Definition by closing a set of generating
// permutations under composition.
type PermutationBuilder struct {
	def    Definition
	degree int
	gens   [][]int
	err    error
}

// NewPermutationBuilder creates a builder for permutations of 0..degree-1.
func NewPermutationBuilder(name string, degree int) *PermutationBuilder {
	b := &PermutationBuilder{def: Definition{Name: name}, degree: degree}
	if degree < 1 {
		b.err = fmt.Errorf("%w: %q degree must be positive", ErrInvalid, name)
	}
	return b
}

// ShortName sets the short display name.
func (b *PermutationBuilder) ShortName(s string) *PermutationBuilder {
	b.def.ShortName = s
	return b
}

// Description sets the free-text description.
func (b *PermutationBuilder) Description(s string) *PermutationBuilder {
	b.def.Description = s
	return b
}

// Generator adds a generator given as the images of 0..degree-1.
func (b *PermutationBuilder) Generator(images ...int) *PermutationBuilder {
	if b.err != nil {
		return b
	}
	if len(images) != b.degree {
		b.err = fmt.Errorf("%w: %q generator has %d images, degree is %d", ErrInvalid, b.def.Name, len(images), b.degree)
		return b
	}
	seen := make([]bool, b.degree)
	for _, v := range images {
		if v < 0 || v >= b.degree || seen[v] {
			b.err = fmt.Errorf("%w: %q generator %v is not a permutation", ErrInvalid, b.def.Name, images)
			return b
		}
		seen[v] = true
	}
	b.gens = append(b.gens, append([]int(nil), images...))
	return b
}

// Cycle adds a generator consisting of a single cycle on the given points.
func (b *PermutationBuilder) Cycle(points ...int) *PermutationBuilder {
	p := identity(b.degree)
	for i, pt := range points {
		if pt < 0 || pt >= b.degree {
			if b.err == nil {
				b.err = fmt.Errorf("%w: %q cycle point %d out of range", ErrInvalid, b.def.Name, pt)
			}
			return b
		}
		p[pt] = points[(i+1)%len(points)]
	}
	return b.Generator(p...)
}

// Build closes the generators and returns the resulting Definition. The
// identity is element 0 and the remaining elements follow in breadth-first
// order over the generators.
func (b *PermutationBuilder) Build() (*Definition, error) {
	if b.err != nil {
		return nil, b.err
	}

	id := identity(b.degree)
	elems := [][]int{id}
	index := map[string]int{permKey(id): 0}
	for q := 0; q < len(elems); q++ {
		for _, g := range b.gens {
			next := compose(elems[q], g)
			k := permKey(next)
			if _, ok := index[k]; ok {
				continue
			}
			if len(elems) == MaxOrder {
				return nil, fmt.Errorf("%w: %q generates more than %d elements", ErrInvalid, b.def.Name, MaxOrder)
			}
			index[k] = len(elems)
			elems = append(elems, next)
		}
	}

	n := len(elems)
	table := make([][]int, n)
	for i := range elems {
		table[i] = make([]int, n)
		for j := range elems {
			table[i][j] = index[permKey(compose(elems[i], elems[j]))]
		}
	}
	rep := make([]string, n)
	for i, p := range elems {
		rep[i] = cycleNotation(p)
	}

	def := b.def
	def.MultTable = table
	def.Representation = rep
	return &def, nil
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// compose applies a then b.
func compose(a, b []int) []int {
	r := make([]int, len(a))
	for i, v := range a {
		r[i] = b[v]
	}
	return r
}

func permKey(p []int) string {
	var sb strings.Builder
	for _, v := range p {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte(',')
	}
	return sb.String()
}

// cycleNotation renders p with 1-based points, e.g. "(1 2 3)(4 5)".
func cycleNotation(p []int) string {
	var sb strings.Builder
	done := make([]bool, len(p))
	for start := range p {
		if done[start] || p[start] == start {
			continue
		}
		sb.WriteByte('(')
		for x := start; !done[x]; x = p[x] {
			done[x] = true
			if x != start {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(x + 1))
		}
		sb.WriteByte(')')
	}
	if sb.Len() == 0 {
		return "e"
	}
	return sb.String()
}
