package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"guessword/pkg/realtime"
)

// Event names published on a session's broadcaster.
const (
	EventWord     = "word"
	EventScore    = "score"
	EventTimer    = "timer"
	EventBuzz     = "buzz"
	EventFinished = "finished"
)

// BuzzEvent is the event published when cue is raised. The cue travels
// with the event, so an acknowledgment that lands before a stream renders it
// does not change what the stream plays.
func BuzzEvent(cue BuzzCue) string {
	return EventBuzz + ":" + cue.String()
}

// ParseEvent splits a published event into its name and, for buzz events,
// the cue that was raised.
func ParseEvent(event string) (name string, cue BuzzCue, err error) {
	name, arg, found := strings.Cut(event, ":")
	if name != EventBuzz || !found {
		return name, BuzzNone, nil
	}
	if err := cue.UnmarshalText([]byte(arg)); err != nil {
		return name, BuzzNone, fmt.Errorf("event %q: %w", event, err)
	}
	return name, cue, nil
}

// Hook is called for every new session. The returned func, if any, runs
// when the session is disposed.
type Hook func(s *Session) (detach func())

type entry struct {
	session *Session
	detach  []func()
}

// Store holds sessions and delegates to realtime.RoomStore for lookup and
// broadcast.
type Store struct {
	r      *realtime.RoomStore[*entry]
	clock  clockwork.Clock
	ticker realtime.Ticker

	mu    sync.Mutex
	hooks []Hook
}

// NewStore creates an in-memory session store. Sessions count down on
// clock; nil means the real clock.
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		r:      realtime.NewRoomStore[*entry](),
		clock:  clock,
		ticker: realtime.NewClockTicker(clock),
	}
}

// OnCreate registers a hook for sessions created from now on.
func (s *Store) OnCreate(h Hook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, h)
	s.mu.Unlock()
}

// CreateSession starts a session and forwards its value changes to the
// session's broadcaster as events.
func (s *Store) CreateSession(cfg Config, opts ...Option) (*Session, error) {
	opts = append([]Option{WithTicker(s.ticker)}, opts...)
	sess, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	id := sess.ID()
	e := &entry{session: sess}
	e.detach = append(e.detach,
		sess.Word().Subscribe(func(string) { s.r.Publish(id, EventWord) }),
		sess.Score().Subscribe(func(int) { s.r.Publish(id, EventScore) }),
		sess.RemainingSeconds().Subscribe(func(int) { s.r.Publish(id, EventTimer) }),
		sess.Buzz().Subscribe(func(cue BuzzCue) { s.r.Publish(id, BuzzEvent(cue)) }),
		sess.Finished().Subscribe(func(bool) { s.r.Publish(id, EventFinished) }),
	)

	s.mu.Lock()
	hooks := append([]Hook(nil), s.hooks...)
	s.mu.Unlock()
	for _, h := range hooks {
		if detach := h(sess); detach != nil {
			e.detach = append(e.detach, detach)
		}
	}

	s.r.Create(id, e, s.clock.Now())
	return sess, nil
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State.session, true
}

// Broadcaster returns the event broadcaster for a session.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster[string], bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.Hub(), true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Dispose tears a session down: the countdown stops, observers added by
// the store are detached and stream subscribers are closed.
func (s *Store) Dispose(id string) bool {
	room, ok := s.r.Delete(id)
	if !ok {
		return false
	}
	room.State.session.Dispose()
	for _, detach := range room.State.detach {
		detach()
	}
	return true
}

// DisposeAll tears down every session, e.g. on shutdown.
func (s *Store) DisposeAll() int {
	n := 0
	for _, room := range s.r.Rooms() {
		if s.Dispose(room.ID) {
			n++
		}
	}
	return n
}

// Sweep disposes sessions created more than maxAge before now.
func (s *Store) Sweep(now time.Time, maxAge time.Duration) int {
	n := 0
	for _, room := range s.r.Rooms() {
		if now.Sub(room.CreatedAt) <= maxAge {
			// Rooms are ordered oldest first.
			break
		}
		if s.Dispose(room.ID) {
			n++
		}
	}
	if n > 0 {
		log.Info().Int("disposed", n).Dur("max_age", maxAge).Msg("swept stale sessions")
	}
	return n
}
