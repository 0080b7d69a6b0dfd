// Package metrics exports session activity to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"guessword/internal/game"
)

// Recorder holds the collectors for game sessions.
type Recorder struct {
	started     prometheus.Counter
	finished    prometheus.Counter
	disposed    prometheus.Counter
	active      prometheus.Gauge
	guesses     *prometheus.CounterVec
	wordsServed prometheus.Counter
	buzzes      *prometheus.CounterVec
	finalScore  prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessword_sessions_started_total",
			Help: "Total number of game sessions started",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessword_sessions_finished_total",
			Help: "Total number of game sessions whose countdown expired",
		}),
		disposed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessword_sessions_disposed_total",
			Help: "Total number of game sessions torn down",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "guessword_sessions_active",
			Help: "Number of sessions that have not been disposed",
		}),
		guesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guessword_guesses_total",
				Help: "Total number of answers by result",
			},
			[]string{"result"},
		),
		wordsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guessword_words_served_total",
			Help: "Total number of words shown after the first one",
		}),
		buzzes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guessword_buzz_cues_total",
				Help: "Total number of haptic cues raised by cue",
			},
			[]string{"cue"},
		),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guessword_final_score",
			Help:    "Score at countdown expiry",
			Buckets: prometheus.LinearBuckets(-5, 5, 8),
		}),
	}
	reg.MustRegister(r.started, r.finished, r.disposed, r.active, r.guesses, r.wordsServed, r.buzzes, r.finalScore)
	return r
}

// Track observes sess until the returned detach func is called. It fits
// game.Store.OnCreate.
func (r *Recorder) Track(sess *game.Session) (detach func()) {
	r.started.Inc()
	r.active.Inc()

	var mu sync.Mutex
	last := sess.Score().Get()
	unsubs := []func(){
		sess.Score().Subscribe(func(score int) {
			mu.Lock()
			delta := score - last
			last = score
			mu.Unlock()
			switch {
			case delta > 0:
				r.guesses.WithLabelValues("correct").Add(float64(delta))
			case delta < 0:
				r.guesses.WithLabelValues("skip").Add(float64(-delta))
			}
		}),
		sess.Word().Subscribe(func(string) { r.wordsServed.Inc() }),
		sess.Buzz().Subscribe(func(cue game.BuzzCue) {
			if cue != game.BuzzNone {
				r.buzzes.WithLabelValues(cue.String()).Inc()
			}
		}),
		sess.Finished().Subscribe(func(finished bool) {
			if finished {
				r.finished.Inc()
				r.finalScore.Observe(float64(sess.Score().Get()))
			}
		}),
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, unsub := range unsubs {
				unsub()
			}
			r.active.Dec()
			r.disposed.Inc()
		})
	}
}
