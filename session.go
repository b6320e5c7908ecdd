package groupx

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/interaction"
	"github.com/comalice/groupx/internal/lattice"
	"github.com/comalice/groupx/internal/solvable"
	"github.com/comalice/groupx/internal/subsets"
)

// Session is the state of exploring one group: the group itself and the
// subsets built so far. It replaces any notion of a global current group;
// independent sessions may run side by side.
type Session struct {
	id       string
	explorer *Explorer
	group    *core.Group
	subsets  *subsets.Registry
	logger   *zap.Logger
}

// Session starts a session on an already built group.
func (e *Explorer) Session(g *core.Group) (*Session, error) {
	id := uuid.NewString()
	logger := e.logger.With(zap.String("session", id), zap.String("group", g.ShortName()))
	opts := []subsets.Option{subsets.WithLogger(logger)}
	if e.publisher != nil {
		opts = append(opts, subsets.WithPublisher(e.publisher))
	}
	reg, err := subsets.New(g, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("session opened", zap.Int("order", g.Order()))
	return &Session{id: id, explorer: e, group: g, subsets: reg, logger: logger}, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Group returns the group being explored.
func (s *Session) Group() *core.Group { return s.group }

// Subsets returns the session's subset registry.
func (s *Session) Subsets() *subsets.Registry { return s.subsets }

// Summary is the one-screen description of a group.
type Summary struct {
	Name             string   `json:"name" yaml:"name"`
	Order            int      `json:"order" yaml:"order"`
	IsomorphicTo     string   `json:"isomorphicTo,omitempty" yaml:"isomorphicTo,omitempty"`
	Abelian          bool     `json:"abelian" yaml:"abelian"`
	Solvable         string   `json:"solvable" yaml:"solvable"`
	Simple           bool     `json:"simple" yaml:"simple"`
	Subgroups        string   `json:"subgroups" yaml:"subgroups"`
	ConjugacyClasses int      `json:"conjugacyClasses" yaml:"conjugacyClasses"`
	Generators       []string `json:"generators" yaml:"generators"`
}

// Summary describes the group.
func (s *Session) Summary() (*Summary, error) {
	g := s.group
	subgroups, err := lattice.Summary(g)
	if err != nil {
		return nil, err
	}
	gens := make([]string, 0, len(g.Generators()))
	for _, x := range g.Generators() {
		gens = append(gens, g.ElementName(x))
	}
	sum := &Summary{
		Name:             g.Name(),
		Order:            g.Order(),
		Abelian:          g.IsAbelian(),
		Solvable:         solvable.Summary(g),
		Simple:           g.IsSimple(),
		Subgroups:        subgroups,
		ConjugacyClasses: len(g.ConjugacyClasses()),
		Generators:       gens,
	}
	if lg, err := s.explorer.lib.Find(g); err == nil {
		sum.IsomorphicTo = lg.Name()
	}
	return sum, nil
}

func (s *Session) solvableOpts() []solvable.Option {
	return []solvable.Option{solvable.WithLogger(s.logger)}
}

// Decompose finds a solvable decomposition.
func (s *Session) Decompose(ctx context.Context) (*solvable.Decomposition, error) {
	return solvable.Decompose(ctx, s.group, s.explorer.lib, s.solvableOpts()...)
}

// SolvableReport classifies the group and decomposes it when possible.
func (s *Session) SolvableReport(ctx context.Context) (*solvable.Report, error) {
	return solvable.Analyze(ctx, s.group, s.explorer.lib, s.solvableOpts()...)
}

// DetailedDecomposition returns the decomposition through library groups
// with embeddings and quotient maps.
func (s *Session) DetailedDecomposition(ctx context.Context) ([]solvable.Step, error) {
	return solvable.Detailed(ctx, s.group, s.explorer.lib, s.solvableOpts()...)
}

// Lattice organizes the subgroup lattice with the explorer's layout.
func (s *Session) Lattice(ctx context.Context) (*lattice.Lattice, error) {
	return lattice.Organize(ctx, s.group, s.explorer.layout)
}

// Subgroups describes every subgroup.
func (s *Session) Subgroups() ([]lattice.Report, error) {
	return lattice.Reports(s.group, s.explorer.lib)
}

// Embedding shows how the library group isomorphic to subgroup i embeds.
func (s *Session) Embedding(i int) (*lattice.EmbeddingInfo, error) {
	return lattice.Embedding(s.group, s.explorer.lib, i)
}

// Quotient returns the short exact sequence for the normal subgroup i.
func (s *Session) Quotient(i int) (*lattice.Sequence, error) {
	return lattice.ShortExactSequence(s.group, s.explorer.lib, i)
}

// LongPress returns a long-press handler using the explorer's delay. The
// caller must Stop it.
func (s *Session) LongPress() *interaction.LongPress {
	return interaction.NewLongPress(
		interaction.WithDelay(s.explorer.longPress),
		interaction.WithLogger(s.logger),
	)
}
