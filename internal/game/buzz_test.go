package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuzzCue_String(t *testing.T) {
	assert.Equal(t, "none", BuzzNone.String())
	assert.Equal(t, "correct", BuzzCorrect.String())
	assert.Equal(t, "game_over", BuzzGameOver.String())
	assert.Equal(t, "countdown_panic", BuzzCountdownPanic.String())
	assert.Equal(t, "BuzzCue(42)", BuzzCue(42).String())
}

func TestBuzzCue_Pattern(t *testing.T) {
	assert.Empty(t, BuzzNone.Pattern())
	assert.Equal(t, []time.Duration{0, 200 * time.Millisecond}, BuzzCountdownPanic.Pattern())
	assert.Equal(t, []time.Duration{0, 2 * time.Second}, BuzzGameOver.Pattern())
	assert.Len(t, BuzzCorrect.Pattern(), 6)
	assert.Equal(t, []int64{100, 100, 100, 100, 100, 100}, BuzzCorrect.PatternMillis())

	p := BuzzGameOver.Pattern()
	p[1] = time.Hour
	assert.Equal(t, 2*time.Second, BuzzGameOver.Pattern()[1], "Pattern must return a copy")
}

func TestBuzzCue_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Buzz BuzzCue `json:"buzz"`
	}{BuzzCountdownPanic})
	require.NoError(t, err)
	assert.JSONEq(t, `{"buzz":"countdown_panic"}`, string(b))

	var cue BuzzCue
	require.NoError(t, cue.UnmarshalText([]byte("game_over")))
	assert.Equal(t, BuzzGameOver, cue)
	assert.Error(t, cue.UnmarshalText([]byte("rumble")))
}
