package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"guessword/pkg/realtime"
)

// Session is one timed round: a shuffled word queue, a score, a countdown
// and the cues it raises. All mutations happen under mu; observers are
// notified afterwards, in mutation order, through exec.
type Session struct {
	mu      sync.Mutex
	id      string
	cfg     Config
	log     zerolog.Logger
	ticker  realtime.Ticker
	shuffle Shuffler
	handle  realtime.Handle

	exec      *realtime.Serializer
	word      *realtime.Observable[string]
	score     *realtime.Observable[int]
	remaining *realtime.Observable[int]
	buzz      *realtime.Observable[BuzzCue]
	finished  *realtime.Observable[bool]

	queue    []string
	served   int
	corrects int
	skips    int
	expired  bool
	disposed bool
}

// Option customizes a Session.
type Option func(*Session)

// WithTicker sets the countdown source. Tests pass a ClockTicker over a
// clockwork.FakeClock.
func WithTicker(t realtime.Ticker) Option {
	return func(s *Session) {
		if t != nil {
			s.ticker = t
		}
	}
}

// WithShuffler replaces the queue shuffle.
func WithShuffler(fn Shuffler) Option {
	return func(s *Session) {
		if fn != nil {
			s.shuffle = fn
		}
	}
}

// WithLogger sets the base logger; the session adds its id.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New validates cfg, serves the first word and starts the countdown.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Words = append([]string(nil), cfg.Words...)

	exec := realtime.NewSerializer()
	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		log:       log.Logger,
		shuffle:   RandomShuffle,
		exec:      exec,
		word:      realtime.NewObservableOn(exec, ""),
		score:     realtime.NewObservableOn(exec, 0),
		remaining: realtime.NewObservableOn(exec, cfg.TotalSeconds),
		buzz:      realtime.NewObservableOn(exec, BuzzNone),
		finished:  realtime.NewObservableOn(exec, false),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ticker == nil {
		s.ticker = realtime.NewClockTicker(nil)
	}
	s.log = s.log.With().Str("session_id", s.id).Logger()

	s.mu.Lock()
	s.serveNextWordLocked()
	s.handle = s.ticker.Schedule(cfg.total(), cfg.interval(), s.onTick, s.onExpire)
	s.mu.Unlock()
	// Nobody can be subscribed yet; this just empties the queue.
	s.exec.Drain()

	s.log.Info().
		Int("total_seconds", cfg.TotalSeconds).
		Int("words", len(cfg.Words)).
		Msg("game session created")
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config {
	cfg := s.cfg
	cfg.Words = append([]string(nil), s.cfg.Words...)
	return cfg
}

// Word is the word on screen. It is never empty once New returns.
func (s *Session) Word() realtime.Value[string] { return s.word }

// Score is corrects minus skips; it may go negative.
func (s *Session) Score() realtime.Value[int] { return s.score }

// RemainingSeconds counts down from TotalSeconds to zero.
func (s *Session) RemainingSeconds() realtime.Value[int] { return s.remaining }

// Buzz is the last cue raised, BuzzNone once acknowledged.
func (s *Session) Buzz() realtime.Value[BuzzCue] { return s.buzz }

// Finished is raised at expiry and cleared by AcknowledgeFinished.
func (s *Session) Finished() realtime.Value[bool] { return s.finished }

// Skip costs a point and moves on to the next word.
func (s *Session) Skip() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.skips++
	s.score.Set(s.score.Get() - 1)
	s.serveNextWordLocked()
	s.mu.Unlock()
	s.exec.Drain()
}

// Correct scores a point, raises BuzzCorrect and moves on to the next word.
func (s *Session) Correct() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.corrects++
	s.score.Set(s.score.Get() + 1)
	s.buzz.Emit(BuzzCorrect)
	s.serveNextWordLocked()
	s.mu.Unlock()
	s.exec.Drain()
}

// AcknowledgeFinished clears the finished flag once the observer has acted
// on it.
func (s *Session) AcknowledgeFinished() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.finished.Set(false)
	s.mu.Unlock()
	s.exec.Drain()
}

// AcknowledgeBuzz clears the last cue once it has been played.
func (s *Session) AcknowledgeBuzz() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.buzz.Set(BuzzNone)
	s.mu.Unlock()
	s.exec.Drain()
}

// Dispose stops the countdown and drops notifications not yet delivered. It
// is idempotent; once it returns no tick, expiry or action changes the
// session or reaches an observer. An observer call already in progress is
// not interrupted, and Dispose does not wait for the ticker goroutine.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	handle := s.handle
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if handle != nil {
		handle.Cancel()
	}
	dropped := s.exec.Reset()

	s.log.Info().
		Int("dropped_notifications", dropped).
		Int("score", snap.Score).
		Int("remaining_seconds", snap.RemainingSeconds).
		Int("words_served", snap.WordsServed).
		Msg("game session destroyed")
}

// Done is closed once the countdown goroutine has exited, after expiry or
// Dispose.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.Done()
}

func (s *Session) onTick(remaining time.Duration) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		s.log.Debug().Dur("remaining", remaining).Msg("tick after dispose ignored")
		return
	}
	if remaining < s.cfg.panicThreshold() {
		s.buzz.Emit(BuzzCountdownPanic)
	}
	s.remaining.Set(int(remaining / time.Second))
	s.mu.Unlock()
	s.exec.Drain()
}

func (s *Session) onExpire() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		s.log.Debug().Msg("expiry after dispose ignored")
		return
	}
	s.expired = true
	s.finished.Set(true)
	s.buzz.Emit(BuzzGameOver)
	score := s.score.Get()
	s.mu.Unlock()
	s.exec.Drain()

	s.log.Info().Int("score", score).Msg("game finished")
}

// serveNextWordLocked refills and reshuffles an empty queue, then pops the
// front word. The caller must hold s.mu.
func (s *Session) serveNextWordLocked() {
	if len(s.queue) == 0 {
		s.queue = append(s.queue[:0], s.cfg.Words...)
		s.shuffle(s.queue)
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.served++
	s.word.Emit(next)
}

// Snapshot captures the state needed for rendering UI fragments.
type Snapshot struct {
	ID               string  `json:"id"`
	Word             string  `json:"word"`
	Score            int     `json:"score"`
	RemainingSeconds int     `json:"remaining_seconds"`
	TotalSeconds     int     `json:"total_seconds"`
	PanicSeconds     int     `json:"panic_seconds"`
	Buzz             BuzzCue `json:"buzz"`
	Finished         bool    `json:"finished"`
	Expired          bool    `json:"expired"`
	Disposed         bool    `json:"disposed"`
	WordsServed      int     `json:"words_served"`
	Corrects         int     `json:"corrects"`
	Skips            int     `json:"skips"`
}

// Active reports whether the countdown is still running.
func (s Snapshot) Active() bool {
	return !s.Expired && !s.Disposed
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:               s.id,
		Word:             s.word.Get(),
		Score:            s.score.Get(),
		RemainingSeconds: s.remaining.Get(),
		TotalSeconds:     s.cfg.TotalSeconds,
		PanicSeconds:     s.cfg.PanicThresholdSeconds,
		Buzz:             s.buzz.Get(),
		Finished:         s.finished.Get(),
		Expired:          s.expired,
		Disposed:         s.disposed,
		WordsServed:      s.served,
		Corrects:         s.corrects,
		Skips:            s.skips,
	}
}
