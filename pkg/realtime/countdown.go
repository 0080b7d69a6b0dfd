package realtime

import (
	"errors"
	"time"
)

// Countdown holds the timing state of a fixed-length countdown: Total split
// into Interval-sized ticks, measured from Started. It does not hold any game
// state; the owner reacts to Advance(now) by updating its own.
type Countdown struct {
	Total     time.Duration
	Interval  time.Duration
	Started   time.Time
	Delivered int
	Expired   bool
}

// Validate reports whether the countdown can reach exactly zero on a tick.
func (c *Countdown) Validate() error {
	if c.Total <= 0 {
		return errors.New("countdown total must be positive")
	}
	if c.Interval <= 0 {
		return errors.New("countdown interval must be positive")
	}
	if c.Total%c.Interval != 0 {
		return errors.New("countdown interval must divide total")
	}
	return nil
}

// Ticks is the number of intermediate ticks before expiry.
func (c *Countdown) Ticks() int {
	if c.Interval <= 0 {
		return 0
	}
	return int(c.Total / c.Interval)
}

// TickAt returns when tick k (1-based) is due.
func (c *Countdown) TickAt(k int) time.Time {
	return c.Started.Add(time.Duration(k) * c.Interval)
}

// RemainingAt returns the time left on the countdown once tick k has fired.
func (c *Countdown) RemainingAt(k int) time.Duration {
	remaining := c.Total - time.Duration(k)*c.Interval
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Start begins the countdown at now.
func (c *Countdown) Start(now time.Time) {
	c.Started = now
	c.Delivered = 0
	c.Expired = false
}

// NextWake returns when the next tick or the expiry is due. It returns
// (zero, false) before Start and after expiry.
func (c *Countdown) NextWake() (time.Time, bool) {
	if c.Started.IsZero() || c.Expired {
		return time.Time{}, false
	}
	if c.Delivered < c.Ticks() {
		return c.TickAt(c.Delivered + 1), true
	}
	return c.Started.Add(c.Total), true
}

// Advance consumes at most one due event. ticked is true when the next tick
// was due at now (remaining is the time left after it); expired is true when
// every tick has been delivered and the total has elapsed. Callers loop until
// both are false to catch up after a late wake.
func (c *Countdown) Advance(now time.Time) (remaining time.Duration, ticked bool, expired bool) {
	if c.Started.IsZero() || c.Expired {
		return 0, false, false
	}
	if c.Delivered < c.Ticks() {
		next := c.TickAt(c.Delivered + 1)
		if now.Before(next) {
			return 0, false, false
		}
		c.Delivered++
		return c.RemainingAt(c.Delivered), true, false
	}
	if now.Before(c.Started.Add(c.Total)) {
		return 0, false, false
	}
	c.Expired = true
	return 0, false, true
}
