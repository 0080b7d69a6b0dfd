package metrics

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guessword/internal/game"
)

func TestRecorder_Track(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	store := game.NewStore(clockwork.NewFakeClock())
	store.OnCreate(rec.Track)

	sess, err := store.CreateSession(game.DefaultConfig(), game.WithLogger(zerolog.New(io.Discard)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.started))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.active))

	sess.Correct()
	sess.Correct()
	sess.Skip()

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.guesses.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.guesses.WithLabelValues("skip")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.wordsServed))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.buzzes.WithLabelValues("correct")))

	store.Dispose(sess.ID())
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.active))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.disposed))

	sess.Correct()
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.guesses.WithLabelValues("correct")), "disposed sessions are not counted")
}

func TestRecorder_FinishedSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	fc := clockwork.NewFakeClock()
	store := game.NewStore(fc)
	store.OnCreate(rec.Track)
	t.Cleanup(func() { store.DisposeAll() })

	cfg := game.DefaultConfig()
	cfg.TotalSeconds = 1
	sess, err := store.CreateSession(cfg, game.WithLogger(zerolog.New(io.Discard)))
	require.NoError(t, err)
	sess.Correct()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)
	select {
	case <-sess.Done():
	case <-ctx.Done():
		t.Fatal("session did not finish")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.finished))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.buzzes.WithLabelValues("game_over")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.buzzes.WithLabelValues("countdown_panic")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.finalScore))

	count, err := testutil.GatherAndCount(reg, "guessword_sessions_finished_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
