// Package interaction turns raw touch events into reveal requests: holding
// a touch on a subset for long enough asks for its element list.
package interaction

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/groupx/internal/primitives"
)

// DefaultDelay is how long a touch must be held before a reveal fires.
const DefaultDelay = 500 * time.Millisecond

// Option configures a LongPress.
type Option func(*LongPress)

// WithDelay sets the hold delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(l *LongPress) {
		if d > 0 {
			l.delay = d
		}
	}
}

// WithBuffer sets the capacity of the reveal channel.
func WithBuffer(n int) Option {
	return func(l *LongPress) {
		if n >= 0 {
			l.buffer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *LongPress) {
		if log != nil {
			l.logger = log
		}
	}
}

// LongPress schedules a reveal event when a press is held for the delay and
// cancels it on release. At most one press is pending at a time; a new press
// replaces the previous one.
type LongPress struct {
	mu      sync.Mutex
	delay   time.Duration
	buffer  int
	timer   *time.Timer
	pending uint64
	stopped bool
	ch      chan primitives.Event
	logger  *zap.Logger
}

// NewLongPress returns a LongPress ready for use. Call Stop to release it.
func NewLongPress(opts ...Option) *LongPress {
	l := &LongPress{delay: DefaultDelay, buffer: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	l.ch = make(chan primitives.Event, l.buffer)
	return l
}

// Events returns the channel reveal events are delivered on. It is closed
// by Stop.
func (l *LongPress) Events() <-chan primitives.Event {
	return l.ch
}

// Delay returns the configured hold delay.
func (l *LongPress) Delay() time.Duration { return l.delay }

// Press starts the hold timer for subsetID.
func (l *LongPress) Press(subsetID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.pending++
	gen := l.pending
	l.timer = time.AfterFunc(l.delay, func() { l.fire(gen, subsetID) })
}

// Release cancels a pending press.
func (l *LongPress) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.pending++
}

func (l *LongPress) fire(gen uint64, subsetID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// A release or newer press happened after this timer was armed.
	if l.stopped || gen != l.pending {
		return
	}
	l.timer = nil
	select {
	case l.ch <- primitives.NewEvent(primitives.EventReveal, primitives.Reveal{SubsetID: subsetID}):
	default:
		l.logger.Debug("reveal dropped", zap.Int("subset", subsetID))
	}
}

// Handle feeds one touch event. Events with a modifier key held or more
// than one contact are ignored, as are events that are not touches. It
// reports whether the event was used.
func (l *LongPress) Handle(ev primitives.Event) bool {
	touch, ok := ev.Data.(primitives.Touch)
	if !ok || touch.Modified || touch.Points > 1 {
		return false
	}
	switch ev.Type {
	case primitives.EventTouchStart:
		l.Press(touch.SubsetID)
	case primitives.EventTouchEnd:
		l.Release()
	default:
		return false
	}
	return true
}

// Run handles events from in until in is closed or ctx is done.
func (l *LongPress) Run(ctx context.Context, in <-chan primitives.Event) error {
	for {
		select {
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			l.Handle(ev)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop cancels any pending press and closes the event channel. It is safe
// to call more than once.
func (l *LongPress) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	close(l.ch)
}
