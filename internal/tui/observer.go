package tui

import "github.com/mmcdole/reelfind/internal/domain"

// ChannelObserver adapts domain.PollObserver to a channel.
type ChannelObserver struct {
	ch chan<- domain.PollProgress
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.PollProgress) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends progress to the channel (non-blocking if full).
func (o *ChannelObserver) OnProgress(progress domain.PollProgress) {
	select {
	case o.ch <- progress:
	default: // Non-blocking if channel full
	}
}
