// Package bitset provides the fixed-width element set used for every subset
// of a group: subgroups, cosets, conjugacy classes and user subsets.
//
// A BitSet is a value type. Its backing array has a fixed number of words, so
// membership, union, intersection and popcount run in constant time for any
// supported group order, and two sets can be compared with == or used as map
// keys.
package bitset

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// Words is the number of 64-bit words backing every BitSet.
	Words = 8

	// MaxBits is the largest universe a BitSet can represent, and therefore
	// the largest supported group order.
	MaxBits = Words * 64
)

// BitSet is a set of small integers drawn from [0, Len()).
type BitSet struct {
	n int
	w [Words]uint64
}

// New returns an empty set over the universe [0, n).
// It panics if n is negative or larger than MaxBits.
func New(n int) BitSet {
	if n < 0 || n > MaxBits {
		panic("bitset: universe size " + strconv.Itoa(n) + " out of range")
	}
	return BitSet{n: n}
}

// Of returns a set over [0, n) containing elems.
func Of(n int, elems ...int) BitSet {
	b := New(n)
	for _, e := range elems {
		b.Set(e)
	}
	return b
}

// Full returns the set containing every element of [0, n).
func Full(n int) BitSet {
	b := New(n)
	for i := 0; i < n/64; i++ {
		b.w[i] = ^uint64(0)
	}
	if r := n % 64; r != 0 {
		b.w[n/64] = (uint64(1) << r) - 1
	}
	return b
}

// Len returns the size of the universe, not the number of members.
func (b BitSet) Len() int { return b.n }

// Has reports whether i is a member. Out-of-range values are never members.
func (b BitSet) Has(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.w[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set adds i to the set. It panics if i is outside the universe.
func (b *BitSet) Set(i int) {
	if i < 0 || i >= b.n {
		panic("bitset: element " + strconv.Itoa(i) + " outside universe of size " + strconv.Itoa(b.n))
	}
	b.w[i>>6] |= 1 << (uint(i) & 63)
}

// Clear removes i from the set.
func (b *BitSet) Clear(i int) {
	if i < 0 || i >= b.n {
		return
	}
	b.w[i>>6] &^= 1 << (uint(i) & 63)
}

// Count returns the number of members.
func (b BitSet) Count() int {
	c := 0
	for _, w := range b.w {
		c += bits.OnesCount64(w)
	}
	return c
}

// Empty reports whether the set has no members.
func (b BitSet) Empty() bool {
	for _, w := range b.w {
		if w != 0 {
			return false
		}
	}
	return true
}

// Union returns a ∪ b over the larger of the two universes.
func Union(a, b BitSet) BitSet {
	r := BitSet{n: max(a.n, b.n)}
	for i := range r.w {
		r.w[i] = a.w[i] | b.w[i]
	}
	return r
}

// Intersection returns a ∩ b over the larger of the two universes.
func Intersection(a, b BitSet) BitSet {
	r := BitSet{n: max(a.n, b.n)}
	for i := range r.w {
		r.w[i] = a.w[i] & b.w[i]
	}
	return r
}

// Difference returns a \ b.
func Difference(a, b BitSet) BitSet {
	r := BitSet{n: a.n}
	for i := range r.w {
		r.w[i] = a.w[i] &^ b.w[i]
	}
	return r
}

// IsSubsetOf reports whether every member of b is a member of o.
func (b BitSet) IsSubsetOf(o BitSet) bool {
	for i := range b.w {
		if b.w[i]&^o.w[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether b and o have the same members, ignoring universe size.
func (b BitSet) Equal(o BitSet) bool {
	return b.w == o.w
}

// First returns the smallest member, or -1 if the set is empty.
func (b BitSet) First() int {
	for i, w := range b.w {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// Less orders sets by their sorted member lists, lexicographically. For sets
// of equal size the set holding the lowest differing element sorts first.
func (b BitSet) Less(o BitSet) bool {
	for i := range b.w {
		diff := b.w[i] ^ o.w[i]
		if diff == 0 {
			continue
		}
		low := diff & -diff
		return b.w[i]&low != 0
	}
	return false
}

// All iterates over the members in increasing order.
func (b BitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range b.w {
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(i*64 + tz) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Elements returns the members in increasing order.
func (b BitSet) Elements() []int {
	out := make([]int, 0, b.Count())
	for e := range b.All() {
		out = append(out, e)
	}
	return out
}

// String renders the members as a comma-separated list.
func (b BitSet) String() string {
	var sb strings.Builder
	for e := range b.All() {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(e))
	}
	return sb.String()
}
