package tui

import "github.com/kahaaniverse/kahaani/internal/domain"

// ChannelObserver adapts domain.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan domain.Event
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{ch: make(chan domain.Event, buffer)}
}

// OnEvent sends the event to the channel (non-blocking if full).
func (o *ChannelObserver) OnEvent(e domain.Event) {
	select {
	case o.ch <- e:
	default: // Non-blocking if channel full
	}
}

// Events returns the receiving side of the channel
func (o *ChannelObserver) Events() <-chan domain.Event {
	return o.ch
}
