package solvable

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSolvable is returned when no decomposition exists.
	ErrNotSolvable = errors.New("group is not solvable")

	// ErrInvariant is returned when a group flagged solvable yields no
	// decomposition.
	ErrInvariant = errors.New("solvable group yielded no decomposition")
)

// SearchError describes a failed decomposition search.
type SearchError struct {
	// Group is the name of the group whose search failed.
	Group string
	// SubgroupIndex is the first candidate normal subgroup whose own search
	// failed, or -1 when the group had no candidate at all.
	SubgroupIndex int
}

func (e *SearchError) Error() string {
	if e.SubgroupIndex < 0 {
		return fmt.Sprintf("%s: no proper normal subgroup with abelian quotient: %v", e.Group, ErrNotSolvable)
	}
	return fmt.Sprintf("%s: decomposition failed below subgroup %d: %v", e.Group, e.SubgroupIndex, ErrNotSolvable)
}

func (e *SearchError) Unwrap() error { return ErrNotSolvable }
