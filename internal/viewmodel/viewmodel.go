package viewmodel

import "fmt"

// HomePage holds data for the landing page.
type HomePage struct {
	Title          string
	TotalSeconds   int
	ActiveSessions int
}

// GamePage holds data for the main game page template.
type GamePage struct {
	Title     string
	GameID    string
	StreamURL string
	SocketURL string
	Word      WordFragment
	Score     ScoreFragment
	Timer     TimerFragment
	Finished  FinishedFragment
}

// WordFragment holds the word currently shown.
type WordFragment struct {
	GameID string
	Word   string
	Locked bool
}

// ScoreFragment holds the running score.
type ScoreFragment struct {
	Score int
}

// TimerFragment holds the countdown display.
type TimerFragment struct {
	Remaining int
	Total     int
	Display   string
	Panic     bool
}

// FinishedFragment holds the end-of-round panel. Finished is the
// unacknowledged signal; Over stays true after acknowledgment.
type FinishedFragment struct {
	GameID   string
	Over     bool
	Finished bool
	Score    int
	Corrects int
	Skips    int
}

// BuzzPayload is sent to the browser for navigator.vibrate.
type BuzzPayload struct {
	Cue     string  `json:"cue"`
	Pattern []int64 `json:"pattern"`
}

// NewTimerFragment formats the countdown. Panic mirrors the cue threshold.
func NewTimerFragment(remaining, total, panicThreshold int) TimerFragment {
	return TimerFragment{
		Remaining: remaining,
		Total:     total,
		Display:   FormatElapsed(remaining),
		Panic:     remaining < panicThreshold,
	}
}

// FormatElapsed renders seconds as MM:SS, or H:MM:SS from one hour up.
// Negative input renders as 00:00.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
