// Package cli plays a game session in a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
)

const (
	colorWord  = "#818cf8"
	colorScore = "#34d399"
	colorPanic = "#f87171"
)

// Renderer draws the session status line.
type Renderer struct {
	mu   sync.Mutex
	out  *termenv.Output
	bell bool
}

// NewRenderer writes to w using profile. Pass termenv.Ascii for plain text.
func NewRenderer(w io.Writer, profile termenv.Profile, bell bool) *Renderer {
	return &Renderer{
		out:  termenv.NewOutput(w, termenv.WithProfile(profile)),
		bell: bell,
	}
}

// Intro prints the key help.
func (r *Renderer) Intro(s game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Guess the word! %s on the clock. [c] correct  [s] skip  [q] quit\r\n",
		viewmodel.FormatElapsed(s.TotalSeconds))
}

// Status redraws the current line.
func (r *Renderer) Status(s game.Snapshot) {
	timer := viewmodel.NewTimerFragment(s.RemainingSeconds, s.TotalSeconds, s.PanicSeconds)
	clock := r.out.String(timer.Display)
	if timer.Panic {
		clock = clock.Foreground(r.out.Color(colorPanic)).Bold()
	}
	word := r.out.String(s.Word).Foreground(r.out.Color(colorWord)).Bold()
	score := r.out.String(fmt.Sprintf("%+d", s.Score)).Foreground(r.out.Color(colorScore))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.ClearLine()
	fmt.Fprintf(r.out, "\r[%s] score %s  %s", clock, score, word)
}

// Buzz rings the terminal bell for a cue.
func (r *Renderer) Buzz(cue game.BuzzCue) {
	if !r.bell || cue == game.BuzzNone {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.out, "\a")
}

// Summary prints the final result.
func (r *Renderer) Summary(s game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	title := "Time's up!"
	if !s.Expired {
		title = "Game stopped."
	}
	fmt.Fprintf(r.out, "\r\n%s Final score: %s (%d correct, %d skipped)\r\n",
		r.out.String(title).Bold(),
		r.out.String(fmt.Sprintf("%d", s.Score)).Foreground(r.out.Color(colorScore)).Bold(),
		s.Corrects, s.Skips)
}

// Play drives sess from single-key input on in until the countdown
// expires, the player quits, input ends or ctx is cancelled. It returns the
// final snapshot; the caller still owns sess and must dispose it.
func Play(ctx context.Context, sess *game.Session, in io.Reader, r *Renderer) game.Snapshot {
	finished := make(chan struct{}, 1)
	redraw := func() { r.Status(sess.Snapshot()) }

	unsubs := []func(){
		sess.Word().Subscribe(func(string) { redraw() }),
		sess.Score().Subscribe(func(int) { redraw() }),
		sess.RemainingSeconds().Subscribe(func(int) { redraw() }),
		sess.Buzz().Subscribe(func(cue game.BuzzCue) {
			if cue == game.BuzzNone {
				return
			}
			r.Buzz(cue)
			sess.AcknowledgeBuzz()
		}),
		sess.Finished().Subscribe(func(done bool) {
			if !done {
				return
			}
			sess.AcknowledgeFinished()
			select {
			case finished <- struct{}{}:
			default:
			}
		}),
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	r.Intro(sess.Snapshot())
	redraw()

	quit := make(chan struct{})
	go readKeys(in, sess, quit)

	select {
	case <-finished:
	case <-quit:
	case <-ctx.Done():
	}
	final := sess.Snapshot()
	r.Summary(final)
	return final
}

// readKeys maps keys to session actions. It closes quit on 'q', Ctrl-C,
// Ctrl-D or end of input.
func readKeys(in io.Reader, sess *game.Session, quit chan<- struct{}) {
	defer close(quit)
	br := bufio.NewReader(in)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err != io.EOF {
				log.Debug().Err(err).Msg("read input")
			}
			return
		}
		switch b {
		case 'c', 'C', ' ':
			sess.Correct()
		case 's', 'S':
			sess.Skip()
		case 'q', 'Q', 3, 4:
			return
		}
	}
}
