// Package isomorphism matches groups against a reference library of named
// groups.
//
// A Library buckets its groups by a structural fingerprint and confirms a
// match with a generator-image search. It implements core.Library.
package isomorphism

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
)

// Library is an immutable collection of named groups.
type Library struct {
	groups  []*core.Group
	byName  map[string]*core.Group
	buckets map[fingerprint][]*core.Group
	logger  *zap.Logger
}

var _ core.Library = (*Library)(nil)

type options struct {
	logger         *zap.Logger
	workers        int
	skipSubgroups  bool
	keepDuplicates bool
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger used while loading and matching.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers limits how many groups are built concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithoutSubgroups builds library groups without subgroup lists. Lookups
// still work; detailed decompositions that recurse on library groups do not.
func WithoutSubgroups() Option {
	return func(o *options) { o.skipSubgroups = true }
}

// Load builds a library from defs. Groups are built concurrently; an entry
// isomorphic to an earlier one, or sharing its name, is dropped with a log
// line.
func Load(ctx context.Context, defs []*primitives.Definition, opts ...Option) (*Library, error) {
	o := options{logger: zap.NewNop(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	built := make([]*core.Group, len(defs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for i, def := range defs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			groupOpts := []core.Option{core.WithLogger(o.logger)}
			if o.skipSubgroups {
				groupOpts = append(groupOpts, core.WithoutSubgroups())
			}
			g, err := core.NewGroup(def, groupOpts...)
			if err != nil {
				return fmt.Errorf("library entry %d (%s): %w", i, def.Name, err)
			}
			built[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lib := &Library{
		byName:  make(map[string]*core.Group, len(built)),
		buckets: make(map[fingerprint][]*core.Group),
		logger:  o.logger,
	}
	for _, g := range built {
		if prev, ok := lib.byName[g.Name()]; ok {
			o.logger.Warn("duplicate library name dropped",
				zap.String("name", g.Name()),
				zap.Int("kept_order", prev.Order()),
				zap.Int("dropped_order", g.Order()),
			)
			continue
		}
		if prev, _, err := lib.match(g); err == nil {
			o.logger.Debug("isomorphic library entry dropped",
				zap.String("name", g.Name()),
				zap.String("isomorphic_to", prev.Name()),
			)
			continue
		}
		lib.add(g)
	}
	libraryGroups.Set(float64(len(lib.groups)))
	o.logger.Info("library loaded", zap.Int("groups", len(lib.groups)), zap.Int("definitions", len(defs)))
	return lib, nil
}

// Default loads the builtin library.
func Default(ctx context.Context, opts ...Option) (*Library, error) {
	return Load(ctx, Builtin(), opts...)
}

func (l *Library) add(g *core.Group) {
	l.groups = append(l.groups, g)
	l.byName[g.Name()] = g
	fp := fingerprintOf(g)
	l.buckets[fp] = append(l.buckets[fp], g)
}

// Groups returns the library groups in load order.
func (l *Library) Groups() []*core.Group {
	return append([]*core.Group(nil), l.groups...)
}

// Len returns the number of groups.
func (l *Library) Len() int { return len(l.groups) }

// Lookup returns the library group with the given name.
func (l *Library) Lookup(name string) (*core.Group, error) {
	g, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, core.ErrNotFound)
	}
	return g, nil
}

// Match returns the library group isomorphic to g and an isomorphism from g
// onto it.
func (l *Library) Match(g *core.Group) (*core.Group, []int, error) {
	lib, phi, err := l.match(g)
	observe("find", err)
	return lib, phi, err
}

func (l *Library) match(g *core.Group) (*core.Group, []int, error) {
	for _, cand := range l.buckets[fingerprintOf(g)] {
		if phi, ok := Isomorphism(g, cand); ok {
			return cand, phi, nil
		}
	}
	return nil, nil, fmt.Errorf("%s (order %d): %w", g.Name(), g.Order(), core.ErrNotFound)
}

// Find returns the library group isomorphic to g.
func (l *Library) Find(g *core.Group) (*core.Group, error) {
	lib, _, err := l.Match(g)
	return lib, err
}

// FindEmbedding returns the library group isomorphic to subgroup i of g and
// the embedding that sends each of its elements into g.
func (l *Library) FindEmbedding(g *core.Group, i int) (*core.Group, []int, error) {
	sub, err := g.SubgroupAsGroup(i)
	if err != nil {
		return nil, nil, err
	}
	lib, phi, err := l.match(sub.Group)
	observe("embedding", err)
	if err != nil {
		return nil, nil, err
	}
	embedding := make([]int, lib.Order())
	for k, image := range phi {
		embedding[image] = sub.Embedding[k]
	}
	return lib, embedding, nil
}

// FindQuotient returns the library group isomorphic to g/N for N = subgroup
// i and the homomorphism from g onto it.
func (l *Library) FindQuotient(g *core.Group, i int) (*core.Group, []int, error) {
	q, err := g.QuotientGroup(i)
	if err != nil {
		return nil, nil, err
	}
	lib, phi, err := l.match(q.Group)
	observe("quotient", err)
	if err != nil {
		return nil, nil, err
	}
	m := make([]int, g.Order())
	for x, coset := range q.Map {
		m[x] = phi[coset]
	}
	return lib, m, nil
}

func observe(kind string, err error) {
	result := "hit"
	if err != nil {
		result = "miss"
	}
	lookupTotal.WithLabelValues(kind, result).Inc()
}
