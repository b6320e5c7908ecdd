package production

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestDefinitionWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewDefinitionWatcher(dir, 50*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	fn := filepath.Join(dir, "z2.yaml")
	if err := os.WriteFile(fn, []byte("name: Z_2\nmulttable:\n  - [0, 1]\n  - [1, 0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads():
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Path != fn || r.Definition == nil || r.Definition.Name != "Z_2" {
			t.Errorf("unexpected reload %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	if err := os.Remove(fn); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for removed := false; !removed; {
		select {
		case r := <-w.Reloads():
			removed = r.Removed
		case <-deadline:
			t.Fatal("no removal")
		}
	}

	if s := w.Stats(); s.Reloads < 1 || s.Removals != 1 {
		t.Errorf("stats %+v", s)
	}
}

func TestDefinitionWatcher_StartFailsOnMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewDefinitionWatcher(filepath.Join(t.TempDir(), "missing"), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err == nil {
		t.Error("Start should fail for a missing directory")
	}
	if err := w.Close(); err != nil {
		t.Error(err)
	}
	w.Stop()
}

func TestDefinitionWatcher_SkipsUnchangedTable(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewDefinitionWatcher(dir, 30*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	fn := filepath.Join(dir, "z2.yaml")
	next := func() Reload {
		t.Helper()
		select {
		case r := <-w.Reloads():
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no reload")
		}
		return Reload{}
	}

	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("name: Z_2\nmulttable:\n  - [0, 1]\n  - [1, 0]\n")
	first := next()
	if first.Digest == "" {
		t.Fatalf("reload without digest: %+v", first)
	}

	// Same table under a new name: skipped.
	write("name: C_2\nmulttable:\n  - [0, 1]\n  - [1, 0]\n")
	time.Sleep(200 * time.Millisecond)
	write("name: Z_3\nmulttable:\n  - [0, 1, 2]\n  - [1, 2, 0]\n  - [2, 0, 1]\n")
	second := next()
	if second.Definition == nil || second.Definition.Name != "Z_3" {
		t.Fatalf("expected Z_3 reload, got %+v", second)
	}
	if second.Digest == first.Digest {
		t.Error("different tables share a digest")
	}
	if s := w.Stats(); s.Unchanged < 1 {
		t.Errorf("stats %+v", s)
	}
}
