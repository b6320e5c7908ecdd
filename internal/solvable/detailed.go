package solvable

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
)

// Step is one group of a detailed decomposition, with the maps that connect
// it to the previous step.
type Step struct {
	Group *core.Group `json:"-" yaml:"-"`
	Name  string      `json:"name" yaml:"name"`
	Order int         `json:"order" yaml:"order"`

	// Embedding maps each element of the previous step's group into Group.
	// It is nil for the first step.
	Embedding []int `json:"embedding,omitempty" yaml:"embedding,omitempty"`
	// Quotient is Group divided by the embedded previous group, and
	// QuotientMap sends each element of Group onto it.
	Quotient     *core.Group `json:"-" yaml:"-"`
	QuotientName string      `json:"quotient,omitempty" yaml:"quotient,omitempty"`
	QuotientMap  []int       `json:"quotientMap,omitempty" yaml:"quotientMap,omitempty"`

	// Elements lists Group's elements coset by coset of the embedded previous
	// group, starting with the embedded group itself.
	Elements []int `json:"elements" yaml:"elements"`
	// Highlight is the image of the previous group.
	Highlight bitset.BitSet `json:"highlight" yaml:"highlight"`
}

// Label renders "G / N ≅ Q" for every step but the first.
func (s Step) Label(previous Step) string {
	return fmt.Sprintf("%s / %s ≅ %s", s.Name, previous.Name, s.QuotientName)
}

// Detailed returns a decomposition whose every group is a library group,
// starting at the trivial group. Each candidate normal subgroup must have a
// library embedding and a library quotient, the quotient must be abelian and
// the search recurses on the library group the subgroup is isomorphic to.
//
// A non-solvable group returns ErrNotSolvable. A solvable group that yields
// nothing is logged as a warning and returns ErrInvariant.
func Detailed(ctx context.Context, g *core.Group, lib core.Library, opts ...Option) ([]Step, error) {
	_, span := tracer.Start(ctx, "solvable.Detailed",
		trace.WithAttributes(attribute.String("group", g.Name())),
	)
	defer span.End()

	if !g.IsSolvable() {
		return nil, fmt.Errorf("%s: %w", g.Name(), ErrNotSolvable)
	}
	if lib == nil {
		return nil, fmt.Errorf("detailed decomposition of %s needs a library: %w", g.Name(), core.ErrNotFound)
	}
	z1, err := core.NewGroup(primitives.Trivial())
	if err != nil {
		return nil, err
	}

	s := newSearcher(lib, opts)
	steps := s.detailed(g, z1)
	if steps == nil {
		invariantViolations.Inc()
		s.logger.Warn("solvable group yielded no detailed decomposition",
			zap.String("group", g.ShortName()),
		)
		span.SetStatus(codes.Error, ErrInvariant.Error())
		return nil, fmt.Errorf("%s: %w", g.Name(), ErrInvariant)
	}
	fillElements(steps)
	span.SetAttributes(attribute.Int("length", len(steps)))
	return steps, nil
}

func (s *searcher) detailed(g, z1 *core.Group) []Step {
	if !g.IsSolvable() {
		return nil
	}
	if g.IsAbelian() {
		identity := make([]int, g.Order())
		for i := range identity {
			identity[i] = i
		}
		return []Step{
			{Group: z1, Name: z1.Name(), Order: 1},
			{
				Group:        g,
				Name:         g.Name(),
				Order:        g.Order(),
				Embedding:    []int{0},
				Quotient:     g,
				QuotientName: g.Name(),
				QuotientMap:  identity,
			},
		}
	}

	subgroups, err := g.Subgroups()
	if err != nil {
		s.logger.Debug("detailed decomposition skipped group without subgroups", zap.String("group", g.Name()))
		return nil
	}
	for _, h := range subgroups {
		if h.IsTrivial() || h.IsWhole() || !h.Normal {
			continue
		}
		n, e, err := s.lib.FindEmbedding(g, h.Index)
		if err != nil {
			continue
		}
		q, qm, err := s.lib.FindQuotient(g, h.Index)
		if err != nil || !q.IsAbelian() {
			continue
		}
		d := s.detailed(n, z1)
		if d == nil {
			backtrackTotal.Inc()
			continue
		}
		return append(d, Step{
			Group:        g,
			Name:         g.Name(),
			Order:        g.Order(),
			Embedding:    e,
			Quotient:     q,
			QuotientName: q.Name(),
			QuotientMap:  qm,
		})
	}
	return nil
}

// fillElements computes the coset ordering and highlight of every step.
func fillElements(steps []Step) {
	for i := range steps {
		st := &steps[i]
		sub := bitset.Of(st.Order, 0)
		for _, e := range st.Embedding {
			sub.Set(e)
		}
		st.Highlight = sub
		st.Elements = st.Elements[:0]
		for _, c := range st.Group.Cosets(sub, true) {
			st.Elements = append(st.Elements, c.Elements()...)
		}
	}
}
