package isomorphism

import (
	"slices"
	"strconv"
	"strings"

	"github.com/comalice/groupx/internal/core"
)

// fingerprint holds isomorphism invariants cheap enough to compute for every
// group. Groups with different fingerprints are never isomorphic.
type fingerprint struct {
	order      int
	abelian    bool
	orderHist  string
	classSizes string
}

func fingerprintOf(g *core.Group) fingerprint {
	hist := make([]int, g.Order()+1)
	for _, k := range g.ElementOrders() {
		hist[k]++
	}
	classes := g.ConjugacyClasses()
	sizes := make([]int, len(classes))
	for i, c := range classes {
		sizes[i] = c.Count()
	}
	slices.Sort(sizes)

	return fingerprint{
		order:      g.Order(),
		abelian:    g.IsAbelian(),
		orderHist:  joinInts(hist),
		classSizes: joinInts(sizes),
	}
}

func joinInts(xs []int) string {
	var sb strings.Builder
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	return sb.String()
}
