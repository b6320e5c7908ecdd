package production

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/lattice"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/solvable"
)

func s3(t *testing.T) *core.Group {
	t.Helper()
	d, err := primitives.Symmetric(3)
	if err != nil {
		t.Fatal(err)
	}
	g, err := core.NewGroup(d)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLatticeDOT(t *testing.T) {
	g := s3(t)
	l, err := lattice.Organize(context.Background(), g, lattice.Layout{})
	if err != nil {
		t.Fatal(err)
	}
	dot, err := LatticeDOT(g, l, 4)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`digraph "Subgroups of S_3" {`,
		`"H_4" [label="H_4\norder 3" peripheries=2 style="rounded,filled" fillcolor=lightgreen];`,
		`"H_1" [label="H_1\norder 2"];`,
		`"H_0" -> "H_4";`,
		`{ rank=same; "H_1"; "H_2"; "H_3"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -> "); n != len(l.Covers) {
		t.Errorf("got %d edges, want %d", n, len(l.Covers))
	}

	d, _ := primitives.Symmetric(3)
	bare, _ := core.NewGroup(d, core.WithoutSubgroups())
	if _, err := LatticeDOT(bare, l); err == nil {
		t.Error("LatticeDOT without subgroups should fail")
	}
}

func TestDecompositionDOT(t *testing.T) {
	dec, err := solvable.Decompose(context.Background(), s3(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	dot := DecompositionDOT(dec)
	if !strings.HasPrefix(dot, "digraph Decomposition {") {
		t.Errorf("unexpected header:\n%s", dot)
	}
	if n := strings.Count(dot, " -> "); n != dec.Len() {
		t.Errorf("got %d edges, want %d", n, dec.Len())
	}
	if !strings.Contains(dot, `n0 [label="Z_1"];`) {
		t.Errorf("missing trivial bottom:\n%s", dot)
	}
}

func TestExport(t *testing.T) {
	g := s3(t)
	l, err := lattice.Organize(context.Background(), g, lattice.Layout{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := ExportJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["group"] != "S_3" {
		t.Errorf("group = %v", decoded["group"])
	}

	data, err = ExportYAML(l)
	if err != nil {
		t.Fatal(err)
	}
	var y struct {
		Group  string  `yaml:"group"`
		Chains [][]int `yaml:"chains"`
	}
	if err := yaml.Unmarshal(data, &y); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if y.Group != "S_3" || len(y.Chains) != 4 {
		t.Errorf("decoded %+v", y)
	}
}
