package groupx

import (
	"context"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/isomorphism"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/production"
)

// LibraryBuilder assembles a reference library fluently. The first error
// met while adding groups is kept and returned by Build.
type LibraryBuilder struct {
	defs    []*primitives.Definition
	err     error
	logger  *zap.Logger
	workers int
}

// NewLibraryBuilder returns an empty builder.
func NewLibraryBuilder() *LibraryBuilder {
	return &LibraryBuilder{logger: zap.NewNop()}
}

func (b *LibraryBuilder) add(def *primitives.Definition, err error) *LibraryBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	b.defs = append(b.defs, def)
	return b
}

// Builtin adds the standard families.
func (b *LibraryBuilder) Builtin() *LibraryBuilder {
	if b.err == nil {
		b.defs = append(b.defs, isomorphism.Builtin()...)
	}
	return b
}

// Cyclic adds Z_n for each n.
func (b *LibraryBuilder) Cyclic(ns ...int) *LibraryBuilder {
	for _, n := range ns {
		b.add(primitives.Cyclic(n))
	}
	return b
}

// Dihedral adds D_n for each n.
func (b *LibraryBuilder) Dihedral(ns ...int) *LibraryBuilder {
	for _, n := range ns {
		b.add(primitives.Dihedral(n))
	}
	return b
}

// Symmetric adds S_n for each n.
func (b *LibraryBuilder) Symmetric(ns ...int) *LibraryBuilder {
	for _, n := range ns {
		b.add(primitives.Symmetric(n))
	}
	return b
}

// Alternating adds A_n for each n.
func (b *LibraryBuilder) Alternating(ns ...int) *LibraryBuilder {
	for _, n := range ns {
		b.add(primitives.Alternating(n))
	}
	return b
}

// Definition adds explicit definitions.
func (b *LibraryBuilder) Definition(defs ...*primitives.Definition) *LibraryBuilder {
	for _, d := range defs {
		b.add(d, nil)
	}
	return b
}

// Dir adds every definition file in dir.
func (b *LibraryBuilder) Dir(dir string) *LibraryBuilder {
	if b.err != nil {
		return b
	}
	defs, err := production.LoadDir(dir)
	if err != nil {
		b.err = err
		return b
	}
	b.defs = append(b.defs, defs...)
	return b
}

// Workers bounds concurrent group construction.
func (b *LibraryBuilder) Workers(n int) *LibraryBuilder {
	b.workers = n
	return b
}

// Logger sets the library's logger.
func (b *LibraryBuilder) Logger(l *zap.Logger) *LibraryBuilder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Len returns the number of definitions added so far.
func (b *LibraryBuilder) Len() int { return len(b.defs) }

// Build loads the library.
func (b *LibraryBuilder) Build(ctx context.Context) (*isomorphism.Library, error) {
	if b.err != nil {
		return nil, b.err
	}
	return isomorphism.Load(ctx, b.defs,
		isomorphism.WithLogger(b.logger),
		isomorphism.WithWorkers(b.workers),
	)
}
