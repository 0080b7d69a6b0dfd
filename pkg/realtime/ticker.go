package realtime

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Ticker schedules a countdown. onTick receives the time left after each
// interval; onExpire fires once after the last tick. Both are called from the
// ticker's own goroutine, never concurrently with each other.
type Ticker interface {
	Schedule(total, interval time.Duration, onTick func(remaining time.Duration), onExpire func()) Handle
}

// Handle cancels a scheduled countdown.
type Handle interface {
	// Cancel stops future deliveries. It is idempotent and does not wait.
	Cancel()
	// Done is closed once the countdown goroutine has exited.
	Done() <-chan struct{}
}

// ClockTicker drives countdowns from a clockwork.Clock. In production use
// clockwork.NewRealClock(); in tests a FakeClock.
type ClockTicker struct {
	clock clockwork.Clock
}

// NewClockTicker returns a ticker backed by clock.
func NewClockTicker(clock clockwork.Clock) *ClockTicker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ClockTicker{clock: clock}
}

// Schedule starts a countdown goroutine. A non-positive interval collapses the
// countdown to a single tick; a non-positive total expires immediately.
func (t *ClockTicker) Schedule(total, interval time.Duration, onTick func(time.Duration), onExpire func()) Handle {
	if total < 0 {
		total = 0
	}
	if interval <= 0 || interval > total {
		interval = total
	}
	h := &tickerHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	cd := &Countdown{Total: total, Interval: interval}
	cd.Start(t.clock.Now())
	go t.run(cd, h, onTick, onExpire)
	return h
}

func (t *ClockTicker) run(cd *Countdown, h *tickerHandle, onTick func(time.Duration), onExpire func()) {
	defer close(h.done)

	for {
		// Deliver everything already due; a late wake catches up one tick
		// at a time so observers never see a skipped second.
		for {
			if h.stopped() {
				return
			}
			remaining, ticked, expired := cd.Advance(t.clock.Now())
			if ticked {
				if onTick != nil {
					onTick(remaining)
				}
				continue
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
			break
		}

		next, ok := cd.NextWake()
		if !ok {
			return
		}
		timer := t.clock.NewTimer(t.clock.Until(next))
		select {
		case <-h.stop:
			stopAndDrainTimer(timer)
			return
		case <-timer.Chan():
		}
	}
}

// stopAndDrainTimer stops a timer and drains its channel if it already fired.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

func (h *tickerHandle) Done() <-chan struct{} {
	return h.done
}

func (h *tickerHandle) stopped() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}
