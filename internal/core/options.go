// Package core provides the group tier of groupx.
// Options for configuring Group construction.
package core

import "go.uber.org/zap"

// WithLogger configures the Group with a zap logger. Nil keeps the no-op
// default.
func WithLogger(l *zap.Logger) Option {
	return func(g *Group) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithoutSubgroups skips subgroup enumeration. Operations that need the
// subgroup list return ErrNoSubgroups.
func WithoutSubgroups() Option {
	return func(g *Group) {
		g.skipSubgroups = true
	}
}

// withSubgroups installs a precomputed subgroup list. Normal flags are
// recomputed against the new group.
func withSubgroups(subs []*Subgroup) Option {
	return func(g *Group) {
		g.subgroups = subs
	}
}
