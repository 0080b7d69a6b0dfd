package realtime

import "sync"

// Serializer runs queued functions one at a time, in the order they were
// queued, on whichever goroutine calls Drain while no other drain is active.
//
// Functions queued from inside a running function are run by the same drain
// before it returns, so callbacks may re-enter code that queues more work.
type Serializer struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
}

// NewSerializer creates an idle serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Enqueue appends fn to the queue without running it.
func (s *Serializer) Enqueue(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Drain runs queued functions until the queue is empty. If another goroutine
// is already draining, Drain returns immediately and that goroutine runs the
// work instead.
func (s *Serializer) Drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			// Cleared under the same lock as the emptiness check so a
			// concurrent Enqueue+Drain never strands work.
			s.draining = false
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()
		fn()
	}
}

// Reset drops every queued function and returns how many were dropped. A
// function a drain has already dequeued still runs; nothing queued before
// Reset runs after it.
func (s *Serializer) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	s.queue = nil
	return n
}

// Pending reports how many functions are waiting to run.
func (s *Serializer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
