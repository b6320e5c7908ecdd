package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/production"
	"github.com/comalice/groupx/testutil"
)

var (
	libOnce sync.Once
	libDir  string
	libErr  error
)

// libraryDir writes a small library once so commands avoid loading every
// builtin group.
func libraryDir(t *testing.T) string {
	t.Helper()
	libOnce.Do(func() {
		libDir, libErr = os.MkdirTemp("", "groupx-cli-*")
		if libErr != nil {
			return
		}
		store, err := production.NewYAMLStore(libDir)
		if err != nil {
			libErr = err
			return
		}
		defs := []func() (*primitives.Definition, error){
			func() (*primitives.Definition, error) { return primitives.Cyclic(2) },
			func() (*primitives.Definition, error) { return primitives.Cyclic(3) },
		}
		for _, f := range testutil.Fixtures() {
			defs = append(defs, f.Def)
		}
		for _, def := range defs {
			d, err := def()
			if err != nil {
				libErr = err
				return
			}
			if err := store.Save(context.Background(), d); err != nil {
				libErr = err
				return
			}
		}
	})
	require.NoError(t, libErr)
	return libDir
}

func TestMain(m *testing.M) {
	code := m.Run()
	if libDir != "" {
		os.RemoveAll(libDir)
	}
	os.Exit(code)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GROUPX_LIBRARY", "")
	t.Setenv("GROUPX_LOG_LEVEL", "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-builtin", "--library", libraryDir(t)}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "S_3")
	assert.Contains(t, out, "order: 6")
	assert.Contains(t, out, "subgroups: 6 subgroups")
	assert.Contains(t, out, "solvable: yes")
	assert.Contains(t, out, "abelian: no")
}

func TestInfoJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "info", "Z_6")
	require.NoError(t, err)
	var sum map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "Z_6", sum["name"])
	assert.Equal(t, true, sum["abelian"])
	assert.Equal(t, "4 subgroups", sum["subgroups"])
}

func TestSolvable(t *testing.T) {
	tests := []struct {
		group string
		want  []string
	}{
		{"S_3", []string{"verdict: solvable", "decomposition: Z_1 ⊲ Z_3 ⊲ S_3", "S_3 / Z_3 ≅ Z_2"}},
		{"Z_6", []string{"verdict: abelian", "decomposition: Z_1 ⊲ Z_6"}},
		{"A_5", []string{"verdict: unsolvable", "simple: yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			out, err := execute(t, "solvable", tt.group)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestSolvableDetailed(t *testing.T) {
	out, err := execute(t, "solvable", "--detailed", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "Z_3 / Z_1 ≅ Z_3")
	assert.Contains(t, out, "S_3 / Z_3 ≅ Z_2")

	_, err = execute(t, "solvable", "--detailed", "A_5")
	assert.Error(t, err)
}

func TestSolvableDOT(t *testing.T) {
	out, err := execute(t, "--format", "dot", "solvable", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph Decomposition")

	_, err = execute(t, "--format", "dot", "solvable", "A_5")
	assert.Error(t, err)
}

func TestLattice(t *testing.T) {
	out, err := execute(t, "--format", "dot", "lattice", "S_3", "--highlight", "4")
	require.NoError(t, err)
	assert.Contains(t, out, `digraph "Subgroups of S_3"`)
	assert.Contains(t, out, "fillcolor=lightgreen")

	out, err = execute(t, "--format", "yaml", "lattice", "S_3")
	require.NoError(t, err)
	var l struct {
		Group  string  `yaml:"group"`
		Chains [][]int `yaml:"chains"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &l))
	assert.Equal(t, "S_3", l.Group)
	assert.Len(t, l.Chains, 4)

	out, err = execute(t, "lattice", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "H_0 < H_1")
}

func TestSubgroups(t *testing.T) {
	out, err := execute(t, "subgroups", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "S_3: 6 subgroups")
	assert.Contains(t, out, "≅ Z_3, normal, quotient Z_2")
}

func TestClasses(t *testing.T) {
	out, err := execute(t, "classes", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "CC_0")
	assert.Contains(t, out, "is a conjugacy class of size 3.")

	out, err = execute(t, "classes", "--order", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "is the set of all elements of order 2.")

	out, err = execute(t, "classes", "--cosets", "1", "--right", "S_3")
	require.NoError(t, err)
	assert.Contains(t, out, "is a right coset of H_1.")

	_, err = execute(t, "--format", "dot", "classes", "S_3")
	assert.ErrorIs(t, err, errDotUnsupported)
}

func TestLibrary(t *testing.T) {
	out, err := execute(t, "--format", "json", "library", "list")
	require.NoError(t, err)
	var entries []libraryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, len(testutil.Fixtures())+2)

	dir := t.TempDir()
	out, err = execute(t, "library", "export", "--json", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "exported")
	_, err = os.Stat(filepath.Join(dir, production.FileName("S_3")+".json"))
	assert.NoError(t, err)
	defs, err := production.LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, defs, len(entries))
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "info", "nonexistent-group")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = execute(t, "--format", "xml", "info", "S_3")
	assert.Error(t, err)

	_, err = execute(t, "info")
	assert.Error(t, err)
}
