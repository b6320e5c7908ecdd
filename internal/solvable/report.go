package solvable

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/core"
)

// Verdict classifies a group for the solvability report.
type Verdict int

const (
	Abelian Verdict = iota
	Solvable
	// Failure means the group is solvable but no decomposition was found.
	Failure
	Unsolvable
)

func (v Verdict) String() string {
	switch v {
	case Abelian:
		return "abelian"
	case Solvable:
		return "solvable"
	case Failure:
		return "failure"
	case Unsolvable:
		return "unsolvable"
	}
	return "unknown"
}

// MarshalText renders the verdict by name.
func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Report is the outcome of Analyze.
type Report struct {
	Group   string  `json:"group" yaml:"group"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	// Decomposition is set for Abelian and Solvable verdicts.
	Decomposition *Decomposition `json:"decomposition,omitempty" yaml:"decomposition,omitempty"`
	// Simple is reported for unsolvable groups.
	Simple bool `json:"simple,omitempty" yaml:"simple,omitempty"`
	// Error carries the search error for the Failure verdict.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Analyze classifies g and computes its decomposition. Search failures on a
// group flagged solvable are logged as warnings and reported as Failure; they
// are not returned as errors. Only precondition violations such as a missing
// subgroup list produce an error.
func Analyze(ctx context.Context, g *core.Group, lib core.Library, opts ...Option) (*Report, error) {
	r := &Report{Group: g.Name()}
	switch {
	case g.IsAbelian():
		r.Verdict = Abelian
	case g.IsSolvable():
		r.Verdict = Solvable
	default:
		r.Verdict = Unsolvable
		r.Simple = g.IsSimple()
		return r, nil
	}

	d, err := Decompose(ctx, g, lib, opts...)
	if err != nil {
		if !errors.Is(err, ErrNotSolvable) {
			return nil, err
		}
		invariantViolations.Inc()
		newSearcher(lib, opts).logger.Warn("solvable group yielded no decomposition",
			zap.String("group", g.Name()),
			zap.Error(err),
		)
		r.Verdict = Failure
		r.Error = err.Error()
		return r, nil
	}
	r.Decomposition = d
	return r, nil
}
