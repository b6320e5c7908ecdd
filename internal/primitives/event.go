// Event carries pointer and highlight notifications between the interaction
// layer and whatever renders the group.
//
// Events are small value types. Consumers must not mutate the Data payload
// after an event has been sent.
package primitives

import "time"

// Event types emitted or consumed by the interaction layer.
const (
	EventTouchStart = "touchstart"
	EventTouchEnd   = "touchend"
	EventReveal     = "reveal"
)

type Event struct {
	Type string
	Data any
}

// NewEvent returns an Event by value.
func NewEvent(eventType string, data any) Event {
	return Event{
		Type: eventType,
		Data: data,
	}
}

// Touch is the payload of a touchstart or touchend event.
type Touch struct {
	// Points is the number of simultaneous contacts.
	Points int
	// Modified is true when a keyboard modifier was held.
	Modified bool
	// SubsetID identifies the subset under the pointer.
	SubsetID int
	At       time.Time
}

// Reveal is the payload of a reveal event: the subset whose element list
// should be shown.
type Reveal struct {
	SubsetID int
}
