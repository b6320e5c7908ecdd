package lattice

import (
	"math"

	"github.com/comalice/groupx/internal/bitset"
	"github.com/comalice/groupx/internal/core"
)

// Layout sets the cell geometry of lattice positions. Zero fields take
// the defaults.
type Layout struct {
	CellWidth  float64 `json:"cellWidth" yaml:"cellWidth"`
	CellHeight float64 `json:"cellHeight" yaml:"cellHeight"`
	Left       float64 `json:"left" yaml:"left"`
	Top        float64 `json:"top" yaml:"top"`
}

// DefaultLayout returns the default cell geometry.
func DefaultLayout() Layout {
	return Layout{CellWidth: 120, CellHeight: 180, Left: 50, Top: 100}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.CellWidth <= 0 {
		l.CellWidth = d.CellWidth
	}
	if l.CellHeight <= 0 {
		l.CellHeight = d.CellHeight
	}
	if l.Left == 0 {
		l.Left = d.Left
	}
	if l.Top == 0 {
		l.Top = d.Top
	}
	return l
}

// Position is the cell assigned to one subgroup.
type Position struct {
	Subgroup int     `json:"subgroup" yaml:"subgroup"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	W        float64 `json:"w" yaml:"w"`
	H        float64 `json:"h" yaml:"h"`
	// Highlight is the set of elements to emphasise in the cell.
	Highlight bitset.BitSet `json:"highlight" yaml:"highlight"`
}

// positions places each subgroup in a cell. The trivial subgroup sits at
// the bottom and the whole group at the top, both centred; every other
// subgroup sits in its chain's column at its tier's row.
func positions(subgroups []*core.Subgroup, chains [][]int, layout Layout) []Position {
	if len(chains) == 0 {
		return nil
	}
	cw, ch := layout.CellWidth, layout.CellHeight
	hSize, vSize := float64(len(chains)), len(chains[0])
	hMargin := math.Ceil(cw * 0.1)
	vMargin := hMargin + (ch-cw)/2

	column := make([]int, len(subgroups))
	slot := make([]int, len(subgroups))
	for c, chain := range chains {
		for k, i := range chain {
			if i != Empty && k != 0 && k != len(chain)-1 {
				column[i], slot[i] = c, k
			}
		}
	}

	out := make([]Position, len(subgroups))
	for _, s := range subgroups {
		var x, y float64
		switch {
		case s.IsTrivial():
			x = hSize*cw/2 - cw/2
			y = ch * float64(vSize-1)
		case s.IsWhole():
			x = hSize*cw/2 - cw/2
			y = 0
		default:
			x = float64(column[s.Index]) * cw
			y = float64(vSize-1-slot[s.Index]) * ch
		}
		out[s.Index] = Position{
			Subgroup:  s.Index,
			X:         layout.Left + x + hMargin,
			Y:         layout.Top + y + vMargin,
			W:         cw - 2*hMargin,
			H:         ch - 2*vMargin,
			Highlight: s.Members,
		}
	}
	return out
}
