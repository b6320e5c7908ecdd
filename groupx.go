// Package groupx explores finite groups: subgroup lattices, quotients,
// solvable decompositions, conjugacy and order classes, and an algebra of
// named subsets.
//
// An Explorer holds the reference library and settings shared by every
// group; a Session holds the state of exploring one group.
package groupx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/config"
	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/interaction"
	"github.com/comalice/groupx/internal/isomorphism"
	"github.com/comalice/groupx/internal/lattice"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/production"
	"github.com/comalice/groupx/internal/subsets"
)

type (
	Definition = primitives.Definition
	Group      = core.Group
	Subgroup   = core.Subgroup
	Library    = isomorphism.Library
	Layout     = lattice.Layout
)

var (
	ErrNotFound          = core.ErrNotFound
	ErrNoSubgroups       = core.ErrNoSubgroups
	ErrNotNormal         = core.ErrNotNormal
	ErrInvalidDefinition = core.ErrInvalidDefinition
)

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger shared by the explorer and its sessions.
func WithLogger(l *zap.Logger) Option {
	return func(e *Explorer) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLibrary uses lib instead of the builtin library.
func WithLibrary(lib *isomorphism.Library) Option {
	return func(e *Explorer) { e.lib = lib }
}

// WithLayout sets the lattice cell geometry.
func WithLayout(l lattice.Layout) Option {
	return func(e *Explorer) { e.layout = l }
}

// WithLongPressDelay sets the hold delay of session long-press handlers.
func WithLongPressDelay(d time.Duration) Option {
	return func(e *Explorer) { e.longPress = d }
}

// WithPublisher sends the subset changes of every session to p.
func WithPublisher(p subsets.Publisher) Option {
	return func(e *Explorer) { e.publisher = p }
}

// Explorer opens sessions against a shared library.
type Explorer struct {
	lib       *isomorphism.Library
	logger    *zap.Logger
	layout    lattice.Layout
	longPress time.Duration
	publisher subsets.Publisher
}

// New creates an Explorer. Without WithLibrary the builtin library is
// loaded.
func New(ctx context.Context, opts ...Option) (*Explorer, error) {
	e := &Explorer{
		logger:    zap.NewNop(),
		layout:    lattice.DefaultLayout(),
		longPress: interaction.DefaultDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.lib == nil {
		lib, err := NewLibraryBuilder().Logger(e.logger).Builtin().Build(ctx)
		if err != nil {
			return nil, err
		}
		e.lib = lib
	}
	return e, nil
}

// FromConfig creates an Explorer from loaded configuration. Extra options
// are applied last.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Explorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := NewLibraryBuilder().Logger(logger).Workers(cfg.Library.Workers)
	if cfg.Library.Builtin {
		b.Builtin()
	}
	for _, dir := range cfg.Library.Dirs {
		b.Dir(dir)
	}
	lib, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	delay, _ := cfg.LongPressDelay()
	base := []Option{
		WithLogger(logger),
		WithLibrary(lib),
		WithLayout(lattice.Layout{
			CellWidth:  cfg.Layout.CellWidth,
			CellHeight: cfg.Layout.CellHeight,
			Left:       cfg.Layout.Left,
			Top:        cfg.Layout.Top,
		}),
		WithLongPressDelay(delay),
	}
	return New(ctx, append(base, opts...)...)
}

// Library returns the reference library.
func (e *Explorer) Library() *isomorphism.Library { return e.lib }

// Logger returns the explorer's logger.
func (e *Explorer) Logger() *zap.Logger { return e.logger }

// Resolve finds a group by library name, or else loads it from a
// definition file.
func (e *Explorer) Resolve(nameOrPath string) (*core.Group, error) {
	if g, err := e.lib.Lookup(nameOrPath); err == nil {
		return g, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%q is neither a library group nor a file: %w", nameOrPath, core.ErrNotFound)
		}
		return nil, err
	}
	def, err := production.LoadFile(nameOrPath)
	if err != nil {
		return nil, err
	}
	return core.NewGroup(def, core.WithLogger(e.logger))
}

// Open builds the group described by def and starts a session on it.
func (e *Explorer) Open(def *primitives.Definition) (*Session, error) {
	g, err := core.NewGroup(def, core.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	return e.Session(g)
}

// OpenName starts a session on a library group or definition file.
func (e *Explorer) OpenName(nameOrPath string) (*Session, error) {
	g, err := e.Resolve(nameOrPath)
	if err != nil {
		return nil, err
	}
	return e.Session(g)
}
