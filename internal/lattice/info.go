package lattice

import (
	"fmt"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
)

// Summary returns "N subgroups".
func Summary(g *core.Group) (string, error) {
	subgroups, err := g.Subgroups()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d subgroups", len(subgroups)), nil
}

// Description classifies a subgroup: the trivial subgroup, the whole group
// (noting when it is a p-group), a Sylow p-subgroup, a p-subgroup, or
// nothing notable. A subgroup is a p-subgroup when its order is a power of
// the prime p; it is Sylow when p does not divide its index.
func Description(g *core.Group, s *core.Subgroup) string {
	switch {
	case s.IsTrivial():
		return "the trivial subgroup"
	case s.IsWhole():
		if p, ok := core.PrimePower(g.Order()); ok {
			return fmt.Sprintf("the whole group, a %d-group", p)
		}
		return "the whole group"
	}
	p, ok := core.PrimePower(s.Order())
	if !ok {
		return ""
	}
	if (g.Order()/s.Order())%p != 0 {
		return fmt.Sprintf("a Sylow %d-subgroup", p)
	}
	return fmt.Sprintf("a %d-subgroup", p)
}

// Report describes one subgroup for display.
type Report struct {
	Index          int           `json:"index" yaml:"index"`
	Label          string        `json:"label" yaml:"label"`
	Order          int           `json:"order" yaml:"order"`
	Members        bitset.BitSet `json:"members" yaml:"members"`
	Generators     bitset.BitSet `json:"generators" yaml:"generators"`
	Elements       []string      `json:"elements" yaml:"elements"`
	GeneratorNames []string      `json:"generatorNames" yaml:"generatorNames"`
	Description    string        `json:"description,omitempty" yaml:"description,omitempty"`
	// IsomorphicTo names the library group isomorphic to the subgroup, or is
	// empty when the library has none.
	IsomorphicTo string `json:"isomorphicTo,omitempty" yaml:"isomorphicTo,omitempty"`
	Normal       bool   `json:"normal" yaml:"normal"`
	// QuotientIsomorphicTo is set only for normal subgroups.
	QuotientIsomorphicTo string `json:"quotientIsomorphicTo,omitempty" yaml:"quotientIsomorphicTo,omitempty"`
}

// Reports describes every subgroup of g. lib may be nil; library misses
// leave the isomorphism names empty.
func Reports(g *core.Group, lib core.Library) ([]Report, error) {
	subgroups, err := g.Subgroups()
	if err != nil {
		return nil, err
	}
	out := make([]Report, len(subgroups))
	for i, s := range subgroups {
		r := Report{
			Index:          s.Index,
			Label:          fmt.Sprintf("H_%d", s.Index),
			Order:          s.Order(),
			Members:        s.Members,
			Generators:     s.Generators,
			Elements:       g.ElementNames(s.Members),
			GeneratorNames: g.ElementNames(s.Generators),
			Description:    Description(g, s),
			Normal:         s.Normal,
		}
		if lib != nil {
			if h, _, err := lib.FindEmbedding(g, s.Index); err == nil {
				r.IsomorphicTo = h.Name()
			}
		}
		if s.Normal {
			r.QuotientIsomorphicTo = quotientName(g, lib, s)
		}
		out[i] = r
	}
	return out, nil
}

// quotientName names g/s. Dividing by the trivial subgroup gives g itself.
func quotientName(g *core.Group, lib core.Library, s *core.Subgroup) string {
	if s.IsTrivial() {
		return g.Name()
	}
	if lib == nil {
		return ""
	}
	q, _, err := lib.FindQuotient(g, s.Index)
	if err != nil {
		return ""
	}
	return q.Name()
}

// Morphism is a map between two groups given by the images of the source's
// generators.
type Morphism struct {
	Name   string   `json:"name" yaml:"name"`
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Pairs  [][2]int `json:"pairs" yaml:"pairs"`
}

func morphism(name string, src *core.Group, target string, images func(int) int) Morphism {
	gens := src.Generators()
	pairs := make([][2]int, len(gens))
	for i, gen := range gens {
		pairs[i] = [2]int{gen, images(gen)}
	}
	return Morphism{Name: name, Source: src.Name(), Target: target, Pairs: pairs}
}

// EmbeddingInfo shows a library group embedded as a subgroup.
type EmbeddingInfo struct {
	Title    string   `json:"title" yaml:"title"`
	Subgroup int      `json:"subgroup" yaml:"subgroup"`
	Library  string   `json:"library" yaml:"library"`
	Group    string   `json:"group" yaml:"group"`
	Map      []int    `json:"map" yaml:"map"`
	Morphism Morphism `json:"morphism" yaml:"morphism"`
	// Highlight is the image of the embedding.
	Highlight bitset.BitSet `json:"highlight" yaml:"highlight"`
}

// Embedding describes how the library group isomorphic to subgroup i sits
// inside g.
func Embedding(g *core.Group, lib core.Library, i int) (*EmbeddingInfo, error) {
	if lib == nil {
		return nil, fmt.Errorf("embedding of %s subgroup %d: %w", g.Name(), i, core.ErrNotFound)
	}
	h, emb, err := lib.FindEmbedding(g, i)
	if err != nil {
		return nil, err
	}
	hl := bitset.New(g.Order())
	for _, e := range emb {
		hl.Set(e)
	}
	return &EmbeddingInfo{
		Title:     fmt.Sprintf("Embedding %s as H_%d in %s", h.Name(), i, g.Name()),
		Subgroup:  i,
		Library:   h.Name(),
		Group:     g.Name(),
		Map:       emb,
		Morphism:  morphism("e", h, g.Name(), func(x int) int { return emb[x] }),
		Highlight: hl,
	}, nil
}

// Sequence is the short exact sequence 1 → N → G → G/N → 1 for a normal
// subgroup N, with N and G/N replaced by their library groups.
type Sequence struct {
	Title    string `json:"title" yaml:"title"`
	Subgroup int    `json:"subgroup" yaml:"subgroup"`
	Normal   string `json:"normal" yaml:"normal"`
	Group    string `json:"group" yaml:"group"`
	Quotient string `json:"quotient" yaml:"quotient"`

	Embedding   []int `json:"embedding" yaml:"embedding"`
	QuotientMap []int `json:"quotientMap" yaml:"quotientMap"`
	// Image is the image of the embedding, which is also the kernel of the
	// quotient map.
	Image     bitset.BitSet `json:"image" yaml:"image"`
	Morphisms []Morphism    `json:"morphisms" yaml:"morphisms"`
}

// ShortExactSequence builds the sequence for the normal subgroup i of g.
func ShortExactSequence(g *core.Group, lib core.Library, i int) (*Sequence, error) {
	s, err := g.Subgroup(i)
	if err != nil {
		return nil, err
	}
	if !s.Normal {
		return nil, fmt.Errorf("%s subgroup %d: %w", g.Name(), i, core.ErrNotNormal)
	}
	if lib == nil {
		return nil, fmt.Errorf("short exact sequence of %s: %w", g.Name(), core.ErrNotFound)
	}
	n, emb, err := lib.FindEmbedding(g, i)
	if err != nil {
		return nil, err
	}
	q, qm, err := lib.FindQuotient(g, i)
	if err != nil {
		return nil, err
	}

	image := bitset.New(g.Order())
	for _, e := range emb {
		image.Set(e)
	}
	return &Sequence{
		Title:       fmt.Sprintf("Short Exact Sequence showing %s / %s ≅ %s", g.Name(), n.Name(), q.Name()),
		Subgroup:    i,
		Normal:      n.Name(),
		Group:       g.Name(),
		Quotient:    q.Name(),
		Embedding:   emb,
		QuotientMap: qm,
		Image:       image,
		Morphisms: []Morphism{
			{Name: "id", Source: "Z_1", Target: n.Name(), Pairs: [][2]int{{0, 0}}},
			morphism("e", n, g.Name(), func(x int) int { return emb[x] }),
			morphism("q", g, q.Name(), func(x int) int { return qm[x] }),
			morphism("z", q, "Z_1", func(int) int { return 0 }),
		},
	}, nil
}
