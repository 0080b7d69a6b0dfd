package game

import (
	"fmt"
	"time"
)

// BuzzCue is a symbolic request for a haptic pattern. The session only
// records which cue fired; playing it is up to whoever observes Buzz().
type BuzzCue int

const (
	BuzzNone BuzzCue = iota
	BuzzCorrect
	BuzzGameOver
	BuzzCountdownPanic
)

var buzzNames = map[BuzzCue]string{
	BuzzNone:           "none",
	BuzzCorrect:        "correct",
	BuzzGameOver:       "game_over",
	BuzzCountdownPanic: "countdown_panic",
}

var buzzPatterns = map[BuzzCue][]time.Duration{
	BuzzCorrect: {
		100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond,
		100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond,
	},
	BuzzGameOver:       {0, 2000 * time.Millisecond},
	BuzzCountdownPanic: {0, 200 * time.Millisecond},
}

func (b BuzzCue) String() string {
	if name, ok := buzzNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BuzzCue(%d)", int(b))
}

// Pattern returns the vibration pattern for the cue as alternating
// wait/vibrate durations, the shape navigator.vibrate and most haptic APIs
// expect. BuzzNone has no pattern.
func (b BuzzCue) Pattern() []time.Duration {
	p := buzzPatterns[b]
	out := make([]time.Duration, len(p))
	copy(out, p)
	return out
}

// PatternMillis is Pattern in whole milliseconds.
func (b BuzzCue) PatternMillis() []int64 {
	p := buzzPatterns[b]
	out := make([]int64, len(p))
	for i, d := range p {
		out[i] = d.Milliseconds()
	}
	return out
}

func (b BuzzCue) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BuzzCue) UnmarshalText(text []byte) error {
	for cue, name := range buzzNames {
		if name == string(text) {
			*b = cue
			return nil
		}
	}
	return fmt.Errorf("unknown buzz cue %q", text)
}
