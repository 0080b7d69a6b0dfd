package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"guessword/pkg/realtime"
)

// newTestSession starts a session on a fake clock with logging discarded.
func newTestSession(t *testing.T, cfg Config, opts ...Option) (*Session, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	opts = append([]Option{
		WithTicker(realtime.NewClockTicker(fc)),
		WithLogger(zerolog.New(io.Discard)),
	}, opts...)
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Dispose)
	return s, fc
}

// step advances the fake clock by one second and waits until the countdown
// goroutine has handled it: either it armed its next timer or it exited.
func step(t *testing.T, fc *clockwork.FakeClock, done <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("countdown timer not armed: %v", err)
	}
	fc.Advance(time.Second)

	armed := make(chan error, 1)
	go func() { armed <- fc.BlockUntilContext(ctx, 1) }()
	select {
	case err := <-armed:
		if err != nil {
			t.Fatalf("countdown stalled: %v", err)
		}
	case <-done:
	}
}

// eventLog records observer notifications in delivery order.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.all() {
		if e == event {
			n++
		}
	}
	return n
}

func watch(s *Session) *eventLog {
	l := &eventLog{}
	s.Word().Subscribe(func(w string) { l.add("word:%s", w) })
	s.Score().Subscribe(func(v int) { l.add("score:%d", v) })
	s.RemainingSeconds().Subscribe(func(v int) { l.add("remaining:%d", v) })
	s.Buzz().Subscribe(func(b BuzzCue) { l.add("buzz:%s", b) })
	s.Finished().Subscribe(func(v bool) { l.add("finished:%t", v) })
	return l
}

func identityShuffle(words []string) {}
