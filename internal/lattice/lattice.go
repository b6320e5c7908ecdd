// Package lattice organises a group's subgroups for display: tiers by order,
// vertical chains from the trivial subgroup to the whole group, covering
// relations and cell positions.
package lattice

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
)

var tracer = otel.Tracer("groupx.lattice")

// Empty marks a chain slot with no subgroup.
const Empty = -1

// Cover records that subgroup From is a maximal proper subgroup of To.
type Cover struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Lattice is the organised subgroup lattice of one group.
type Lattice struct {
	Group string `json:"group" yaml:"group"`
	// Tiers lists subgroup indices grouped by order, smallest order first.
	Tiers [][]int `json:"tiers" yaml:"tiers"`
	// Chains has one slot per tier. Slot 0 is always the trivial subgroup
	// and the last slot the whole group; interior slots hold each remaining
	// subgroup exactly once across all chains, or Empty.
	Chains    [][]int    `json:"chains" yaml:"chains"`
	Covers    []Cover    `json:"covers" yaml:"covers"`
	Positions []Position `json:"positions" yaml:"positions"`
	Layout    Layout     `json:"layout" yaml:"layout"`
}

// Organize builds the lattice of g. g must have its subgroup list computed.
func Organize(ctx context.Context, g *core.Group, layout Layout) (*Lattice, error) {
	subgroups, err := g.Subgroups()
	if err != nil {
		return nil, err
	}
	_, span := tracer.Start(ctx, "lattice.Organize",
		trace.WithAttributes(
			attribute.String("group", g.Name()),
			attribute.Int("subgroups", len(subgroups)),
		),
	)
	defer span.End()

	l := &Lattice{
		Group:  g.Name(),
		Tiers:  Tiers(subgroups),
		Layout: layout.withDefaults(),
	}
	l.Chains = Chains(subgroups, l.Tiers)
	l.Covers = Covers(subgroups)
	l.Positions = positions(subgroups, l.Chains, l.Layout)

	span.SetAttributes(
		attribute.Int("chains", len(l.Chains)),
		attribute.Int("covers", len(l.Covers)),
	)
	latticeSubgroups.Observe(float64(len(subgroups)))
	return l, nil
}

// Tiers groups subgroup indices by order, smallest first. Subgroup lists are
// sorted by order, so indices within a tier are increasing.
func Tiers(subgroups []*core.Subgroup) [][]int {
	var tiers [][]int
	lastOrder := 0
	for _, s := range subgroups {
		if s.Order() != lastOrder {
			tiers = append(tiers, nil)
			lastOrder = s.Order()
		}
		tiers[len(tiers)-1] = append(tiers[len(tiers)-1], s.Index)
	}
	return tiers
}

// Chains walks up from the trivial subgroup, tier by tier, turning the
// lattice into a tree. Each subgroup is consumed by the first walk that
// reaches it, so the chains are greedy, not globally optimal.
func Chains(subgroups []*core.Subgroup, tiers [][]int) [][]int {
	if len(subgroups) == 0 {
		return nil
	}
	tierOf := make([]int, len(subgroups))
	for t, tier := range tiers {
		for _, i := range tier {
			tierOf[i] = t
		}
	}
	w := &chainWalker{
		subgroups: subgroups,
		tiers:     tiers,
		tierOf:    tierOf,
		used:      bitset.New(len(subgroups)),
	}
	chains := w.pathsUpFrom(0)

	top := len(subgroups) - 1
	for _, c := range chains {
		c[0] = 0
		c[len(c)-1] = top
	}
	return chains
}

type chainWalker struct {
	subgroups []*core.Subgroup
	tiers     [][]int
	tierOf    []int
	used      bitset.BitSet
}

// pathsUpFrom returns paths from subgroup h to the top tier, one slot per
// tier from h's tier upward. h occupies the first slot of the first path
// only.
func (w *chainWalker) pathsUpFrom(h int) [][]int {
	w.used.Set(h)
	if w.tierOf[h] == len(w.tiers)-1 {
		return [][]int{{h}}
	}

	var result [][]int
	initial := []int{h}
	members := w.subgroups[h].Members
	for t := w.tierOf[h] + 1; t < len(w.tiers); t++ {
		for _, k := range w.tiers[t] {
			if w.used.Has(k) || !members.IsSubsetOf(w.subgroups[k].Members) {
				continue
			}
			for _, path := range w.pathsUpFrom(k) {
				result = append(result, append(append([]int(nil), initial...), path...))
				initial[0] = Empty
			}
		}
		initial = append(initial, Empty)
	}
	if initial[0] != Empty {
		result = append(result, initial)
	}
	return result
}

// Covers returns every pair (H, K) with H a proper subgroup of K and no
// subgroup strictly between them. The scan is cubic in the number of
// subgroups.
func Covers(subgroups []*core.Subgroup) []Cover {
	var out []Cover
	for _, h := range subgroups {
		for _, k := range subgroups {
			if h == k || !h.Members.IsSubsetOf(k.Members) {
				continue
			}
			if !intermediateExists(subgroups, h, k) {
				out = append(out, Cover{From: h.Index, To: k.Index})
			}
		}
	}
	return out
}

func intermediateExists(subgroups []*core.Subgroup, h, k *core.Subgroup) bool {
	for _, m := range subgroups {
		if m != h && m != k && h.Members.IsSubsetOf(m.Members) && m.Members.IsSubsetOf(k.Members) {
			return true
		}
	}
	return false
}
