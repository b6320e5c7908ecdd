package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/lattice"
	"github.com/comalice/groupx/internal/solvable"
)

// LatticeDOT generates Graphviz DOT source for the Hasse diagram of g's
// subgroup lattice. Subgroups in the same tier share a rank; normal
// subgroups get a double border and highlighted subgroups are filled.
func LatticeDOT(g *core.Group, l *lattice.Lattice, highlight ...int) (string, error) {
	subgroups, err := g.Subgroups()
	if err != nil {
		return "", err
	}
	marked := make(map[int]bool, len(highlight))
	for _, h := range highlight {
		marked[h] = true
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", "Subgroups of "+g.Name())
	buf.WriteString("  rankdir=BT;\n  node [shape=box, fontsize=10, style=rounded];\n  edge [arrowhead=none];\n")

	for _, tier := range l.Tiers {
		buf.WriteString("  { rank=same;")
		for _, i := range tier {
			fmt.Fprintf(&buf, " \"H_%d\";", i)
		}
		buf.WriteString(" }\n")
	}
	for _, s := range subgroups {
		attrs := ""
		if s.Normal {
			attrs += " peripheries=2"
		}
		if marked[s.Index] {
			attrs += ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  \"H_%d\" [label=\"H_%d\\norder %d\"%s];\n", s.Index, s.Index, s.Order(), attrs)
	}
	for _, c := range l.Covers {
		fmt.Fprintf(&buf, "  \"H_%d\" -> \"H_%d\";\n", c.From, c.To)
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

// DecompositionDOT renders a decomposition as a vertical chain whose edges
// carry the quotient names.
func DecompositionDOT(d *solvable.Decomposition) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Decomposition {\n  rankdir=BT;\n  node [shape=box, fontsize=10, style=rounded];\n  edge [fontsize=9];\n")

	prev := ""
	if len(d.Links) == 0 || d.Links[0].Order != 1 {
		prev = "n0"
		buf.WriteString("  n0 [label=\"Z_1\"];\n")
	}
	for i, l := range d.Links {
		id := fmt.Sprintf("n%d", i+1)
		fmt.Fprintf(&buf, "  %s [label=%q];\n", id, l.DisplayName())
		if prev != "" {
			label := l.QuotientIsomorphicTo
			if label == "" && i == 0 {
				label = l.DisplayName()
			}
			fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", prev, id, label)
		}
		prev = id
	}
	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes v as indented JSON.
func ExportJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ExportYAML serializes v as YAML.
func ExportYAML(v any) ([]byte, error) {
	return yaml.Marshal(v)
}
