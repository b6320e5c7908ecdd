package interaction

import (
	"time"

	"github.com/comalice/groupx/internal/primitives"
)

// EventSource supplies touch events to a LongPress via Run.
type EventSource interface {
	Events() <-chan primitives.Event
}

// ChannelEventSource wraps a caller-owned channel.
type ChannelEventSource struct {
	ch chan primitives.Event
}

// NewChannelEventSource creates a ChannelEventSource reading from ch.
func NewChannelEventSource(ch chan primitives.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

func (s *ChannelEventSource) Events() <-chan primitives.Event { return s.ch }

// Step is one scripted event and the pause before it is emitted.
type Step struct {
	After time.Duration
	Event primitives.Event
}

// ScriptedEventSource replays a fixed sequence of events with pauses
// between them, then closes its channel. It drives demos and tests that
// need a realistic press-and-hold without a pointer device.
type ScriptedEventSource struct {
	ch   chan primitives.Event
	stop chan struct{}
	done chan struct{}
}

// NewScriptedEventSource starts replaying steps immediately.
func NewScriptedEventSource(steps ...Step) *ScriptedEventSource {
	s := &ScriptedEventSource{
		ch:   make(chan primitives.Event, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run(steps)
	return s
}

func (s *ScriptedEventSource) run(steps []Step) {
	defer close(s.done)
	defer close(s.ch)
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C
	for _, st := range steps {
		timer.Reset(st.After)
		select {
		case <-timer.C:
		case <-s.stop:
			return
		}
		select {
		case s.ch <- st.Event:
		case <-s.stop:
			return
		}
	}
}

func (s *ScriptedEventSource) Events() <-chan primitives.Event { return s.ch }

// Stop abandons the remaining steps and waits for the replay goroutine.
func (s *ScriptedEventSource) Stop() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
}

// Touch builds a single-point touch event on a subset.
func Touch(eventType string, subsetID int) primitives.Event {
	return primitives.NewEvent(eventType, primitives.Touch{Points: 1, SubsetID: subsetID, At: time.Now()})
}

// Hold scripts a press on subsetID released after d.
func Hold(subsetID int, d time.Duration) []Step {
	return []Step{
		{Event: Touch(primitives.EventTouchStart, subsetID)},
		{After: d, Event: Touch(primitives.EventTouchEnd, subsetID)},
	}
}
