package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"guessword/pkg/realtime"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Config sets the round length and the words a session draws from.
type Config struct {
	TotalSeconds          int
	TickSeconds           int
	PanicThresholdSeconds int
	Words                 []string
}

// DefaultConfig is a ten second round ticking every second, with the
// countdown cue below three seconds, over the built-in word list.
func DefaultConfig() Config {
	return Config{
		TotalSeconds:          10,
		TickSeconds:           1,
		PanicThresholdSeconds: 3,
		Words:                 CanonicalWords(),
	}
}

// Validate checks that the countdown reaches exactly zero and that a refill
// always yields a servable word.
func (c Config) Validate() error {
	cd := realtime.Countdown{Total: c.total(), Interval: c.interval()}
	if err := cd.Validate(); err != nil {
		return fmt.Errorf("%w: %v (total %ds, tick %ds)", ErrInvalidConfig, err, c.TotalSeconds, c.TickSeconds)
	}
	if c.PanicThresholdSeconds < 0 {
		return fmt.Errorf("%w: panic threshold must not be negative, got %d", ErrInvalidConfig, c.PanicThresholdSeconds)
	}
	if len(c.Words) == 0 {
		return fmt.Errorf("%w: word list is empty", ErrInvalidConfig)
	}
	for i, w := range c.Words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("%w: word %d is blank", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (c Config) total() time.Duration {
	return time.Duration(c.TotalSeconds) * time.Second
}

func (c Config) interval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

func (c Config) panicThreshold() time.Duration {
	return time.Duration(c.PanicThresholdSeconds) * time.Second
}
