// Package solvable searches for solvable decompositions: chains
// {e} = H_0 ⊲ H_1 ⊲ ... ⊲ H_n = G in which every quotient H_{i+1}/H_i is
// abelian.
package solvable

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/core"
)

// Link is one group of a decomposition.
type Link struct {
	Group *core.Group `json:"-" yaml:"-"`

	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
	// IsomorphicTo names the library group isomorphic to Group, or is empty.
	IsomorphicTo string `json:"isomorphicTo,omitempty" yaml:"isomorphicTo,omitempty"`

	// SubgroupIndex is the index, in Group's subgroup list, of the previous
	// link. It is -1 for the bottom link.
	SubgroupIndex int `json:"subgroupIndex" yaml:"subgroupIndex"`
	// SubgroupIsomorphicTo and QuotientIsomorphicTo name the library groups
	// isomorphic to the previous link and to Group divided by it.
	SubgroupIsomorphicTo string `json:"subgroupIsomorphicTo,omitempty" yaml:"subgroupIsomorphicTo,omitempty"`
	QuotientIsomorphicTo string `json:"quotientIsomorphicTo,omitempty" yaml:"quotientIsomorphicTo,omitempty"`
}

// DisplayName prefers the library name.
func (l Link) DisplayName() string {
	if l.IsomorphicTo != "" {
		return l.IsomorphicTo
	}
	return l.Name
}

// Decomposition lists the links bottom first. The bottom link is abelian and
// the last link is the decomposed group.
type Decomposition struct {
	Links []Link `json:"links" yaml:"links"`
}

func (d *Decomposition) Len() int { return len(d.Links) }

// Chain renders the decomposition as "Z_1 ⊲ ... ⊲ G".
func (d *Decomposition) Chain() string {
	names := make([]string, 0, len(d.Links)+1)
	if len(d.Links) == 0 || d.Links[0].Order != 1 {
		names = append(names, "Z_1")
	}
	for _, l := range d.Links {
		names = append(names, l.DisplayName())
	}
	return strings.Join(names, " ⊲ ")
}

// Option configures a search.
type Option func(*searcher)

// WithLogger sets the logger for search diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

type searcher struct {
	lib    core.Library
	logger *zap.Logger
}

func newSearcher(lib core.Library, opts []Option) *searcher {
	s := &searcher{lib: lib, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary reports whether g is solvable as "yes" or "no".
func Summary(g *core.Group) string {
	if g.IsSolvable() {
		return "yes"
	}
	return "no"
}

// Decompose finds a solvable decomposition of g. An abelian group decomposes
// as the single link [g]. Otherwise the proper normal subgroups with abelian
// quotient are tried in subgroup-list order, depth first; when a candidate's
// own search fails the next candidate is tried.
//
// Library lookups are optional: lib may be nil, and a miss leaves the
// corresponding name empty. Failure returns a *SearchError wrapping
// ErrNotSolvable. g must have its subgroup list computed.
func Decompose(ctx context.Context, g *core.Group, lib core.Library, opts ...Option) (*Decomposition, error) {
	_, span := tracer.Start(ctx, "solvable.Decompose",
		trace.WithAttributes(
			attribute.String("group", g.Name()),
			attribute.Int("order", g.Order()),
		),
	)
	defer span.End()

	s := newSearcher(lib, opts)
	links, err := s.search(g)
	if err != nil {
		searchTotal.WithLabelValues("failure").Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	searchTotal.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("length", len(links)))
	return &Decomposition{Links: links}, nil
}

func (s *searcher) search(g *core.Group) ([]Link, error) {
	if g.IsAbelian() {
		return []Link{s.link(g)}, nil
	}
	subgroups, err := g.Subgroups()
	if err != nil {
		return nil, err
	}

	failed := -1
	for _, h := range subgroups {
		if h.IsTrivial() || h.IsWhole() || !h.Normal {
			continue
		}
		q, err := g.QuotientGroup(h.Index)
		if err != nil {
			return nil, err
		}
		if !q.Group.IsAbelian() {
			continue
		}
		sub, err := g.SubgroupAsGroup(h.Index)
		if err != nil {
			return nil, err
		}

		links, err := s.search(sub.Group)
		if err != nil {
			var se *SearchError
			if !errors.As(err, &se) {
				return nil, err
			}
			if failed < 0 {
				failed = h.Index
			}
			backtrackTotal.Inc()
			s.logger.Debug("decomposition candidate failed",
				zap.String("group", g.Name()),
				zap.Int("subgroup", h.Index),
			)
			continue
		}

		top := s.link(g)
		top.SubgroupIndex = h.Index
		top.SubgroupIsomorphicTo = links[len(links)-1].IsomorphicTo
		if s.lib != nil {
			if lq, _, err := s.lib.FindQuotient(g, h.Index); err == nil {
				top.QuotientIsomorphicTo = lq.Name()
			}
		}
		return append(links, top), nil
	}
	return nil, &SearchError{Group: g.Name(), SubgroupIndex: failed}
}

func (s *searcher) link(g *core.Group) Link {
	l := Link{Group: g, Name: g.Name(), Order: g.Order(), SubgroupIndex: -1}
	if s.lib != nil {
		if lg, err := s.lib.Find(g); err == nil {
			l.IsomorphicTo = lg.Name()
		}
	}
	return l
}
