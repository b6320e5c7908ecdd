// Package core defines the Library interface used to name groups.
package core

import (
	"errors"

	"github.com/comalice/groupx/internal/primitives"
)

// Library resolves groups to the isomorphic entry of a reference collection.
type Library interface {
	// Find returns the library group isomorphic to g.
	Find(g *Group) (*Group, error)

	// FindEmbedding returns the library group isomorphic to subgroup i of g
	// and a map from the library group's elements into g.
	FindEmbedding(g *Group, i int) (*Group, []int, error)

	// FindQuotient returns the library group isomorphic to g/N for the normal
	// subgroup N = subgroup i, and a map from g's elements onto it.
	FindQuotient(g *Group, i int) (*Group, []int, error)
}

var (
	ErrNotFound        = errors.New("no isomorphic group in library")
	ErrNoSubgroups     = errors.New("subgroups not computed")
	ErrNotNormal       = errors.New("subgroup is not normal")
	ErrIndexOutOfRange = errors.New("subgroup index out of range")

	// ErrInvalidDefinition is wrapped by every definition validation failure.
	ErrInvalidDefinition = primitives.ErrInvalid
)
