package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/groupx/internal/primitives"
)

func TestChannelEventSource(t *testing.T) {
	ch := make(chan primitives.Event, 1)
	s := NewChannelEventSource(ch)
	ch <- Touch(primitives.EventTouchStart, 2)
	ev := <-s.Events()
	if ev.Type != primitives.EventTouchStart {
		t.Errorf("got %q", ev.Type)
	}
}

func TestScriptedHoldReveals(t *testing.T) {
	l := NewLongPress(WithDelay(20 * time.Millisecond))
	defer l.Stop()
	src := NewScriptedEventSource(Hold(5, 80*time.Millisecond)...)
	defer src.Stop()

	if err := l.Run(context.Background(), src.Events()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	select {
	case ev := <-l.Events():
		if r := ev.Data.(primitives.Reveal); r.SubsetID != 5 {
			t.Errorf("revealed %d, want 5", r.SubsetID)
		}
	default:
		t.Fatal("hold longer than the delay did not reveal")
	}
}

func TestScriptedTapDoesNotReveal(t *testing.T) {
	l := NewLongPress(WithDelay(100 * time.Millisecond))
	defer l.Stop()
	src := NewScriptedEventSource(Hold(1, 5*time.Millisecond)...)
	defer src.Stop()

	if err := l.Run(context.Background(), src.Events()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	select {
	case ev := <-l.Events():
		t.Fatalf("unexpected %v", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestScriptedStop(t *testing.T) {
	src := NewScriptedEventSource(Step{After: time.Hour, Event: Touch(primitives.EventTouchStart, 0)})
	src.Stop()
	src.Stop()
	if _, ok := <-src.Events(); ok {
		t.Fatal("channel open after Stop")
	}
}
