package production

import (
	"errors"
	"testing"

	"github.com/comalice/groupx/internal/core"
	"github.com/comalice/groupx/internal/primitives"
	"github.com/comalice/groupx/internal/subsets"
)

func TestChannelPublisher_WithRegistry(t *testing.T) {
	d, err := primitives.Symmetric(3)
	if err != nil {
		t.Fatal(err)
	}
	g, err := core.NewGroup(d)
	if err != nil {
		t.Fatal(err)
	}

	ch := make(chan subsets.Change, 4)
	p := NewChannelPublisher(ch)
	r, err := subsets.New(g, subsets.WithPublisher(p))
	if err != nil {
		t.Fatal(err)
	}

	if len(ch) != 4 {
		t.Fatalf("channel holds %d changes, want 4", len(ch))
	}
	if p.Dropped() != 2 {
		t.Errorf("dropped %d, want 2", p.Dropped())
	}
	first := <-ch
	if first.Type != subsets.Added || first.Entity.Name != "H_0" {
		t.Errorf("first change %+v", first)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := p.Publish(subsets.Change{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish after Close: got %v", err)
	}
	// The registry keeps working when its publisher has gone away.
	if _, err := r.NewSubset(0); err != nil {
		t.Errorf("NewSubset after Close: %v", err)
	}
}
