package production

import (
	"sync"

	"github.com/comalice/groupx/internal/subsets"
)

// ChannelPublisher forwards registry changes to a channel. Publish never
// blocks: changes are dropped when the channel is full.
type ChannelPublisher struct {
	mu      sync.Mutex
	ch      chan<- subsets.Change
	closed  bool
	dropped int
}

var _ subsets.Publisher = (*ChannelPublisher)(nil)

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- subsets.Change) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(c subsets.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.ch <- c:
	default:
		p.dropped++
	}
	return nil
}

// Dropped returns how many changes were dropped on a full channel.
func (p *ChannelPublisher) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the output channel. Later publishes return ErrClosed.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
