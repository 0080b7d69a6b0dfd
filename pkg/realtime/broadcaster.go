package realtime

import "sync"

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Broadcaster fans events out to channel subscribers (SSE streams, websocket
// pumps). A subscriber that falls behind loses events rather than blocking
// the publisher.
type Broadcaster[E any] struct {
	mu     sync.Mutex
	subs   map[chan E]struct{}
	buffer int
	closed bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[E any]() *Broadcaster[E] {
	return NewBroadcasterSize[E](DefaultBuffer)
}

// NewBroadcasterSize creates an empty broadcaster whose subscriber channels
// hold buffer events.
func NewBroadcasterSize[E any](buffer int) *Broadcaster[E] {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster[E]{
		subs:   make(map[chan E]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber and returns its event channel. On a
// closed broadcaster the returned channel is already closed.
func (b *Broadcaster[E]) Subscribe() chan E {
	ch := make(chan E, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster[E]) Unsubscribe(ch chan E) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers an event to all subscribers.
func (b *Broadcaster[E]) Publish(event E) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Lagging subscriber; the next event re-syncs it.
		}
	}
	b.mu.Unlock()
}

// Len returns the number of subscribers.
func (b *Broadcaster[E]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later Subscribe calls get a closed
// channel and Publish becomes a no-op.
func (b *Broadcaster[E]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
