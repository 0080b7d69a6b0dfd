// Package components renders the game page fragments streamed over SSE.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"guessword/internal/viewmodel"
)

// WordFragment renders the current word and the answer buttons.
func WordFragment(data viewmodel.WordFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		disabled := ""
		if data.Locked {
			disabled = " disabled"
		}
		_, err := fmt.Fprintf(w, `<div id="word" class="word-panel">`+
			`<p class="word">%s</p>`+
			`<div class="actions">`+
			`<form method="post" action="/game/%s/skip" data-action="skip"><button type="submit" class="skip"%s>Skip</button></form>`+
			`<form method="post" action="/game/%s/correct" data-action="correct"><button type="submit" class="correct"%s>Got it</button></form>`+
			`</div></div>`,
			templ.EscapeString(data.Word),
			templ.EscapeString(data.GameID), disabled,
			templ.EscapeString(data.GameID), disabled,
		)
		return err
	})
}

// ScoreFragment renders the running score.
func ScoreFragment(data viewmodel.ScoreFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="score" class="score">Score: <strong>%d</strong></div>`, data.Score)
		return err
	})
}

// TimerFragment renders the countdown.
func TimerFragment(data viewmodel.TimerFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "timer"
		if data.Panic {
			class += " panic"
		}
		_, err := fmt.Fprintf(w, `<div id="timer" class="%s" data-remaining="%d" data-total="%d">%s</div>`,
			class, data.Remaining, data.Total, templ.EscapeString(data.Display))
		return err
	})
}

// FinishedFragment renders the end-of-round panel, empty while the round
// runs. data-finished marks an unacknowledged finish for the client script.
func FinishedFragment(data viewmodel.FinishedFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !data.Over {
			_, err := io.WriteString(w, `<div id="finished" data-finished="false"></div>`)
			return err
		}
		_, err := fmt.Fprintf(w, `<div id="finished" class="finished" data-finished="%t">`+
			`<h2>Game over</h2>`+
			`<p>Final score: <strong>%d</strong></p>`+
			`<p>%d correct, %d skipped</p>`+
			`<form method="post" action="/games"><button type="submit">Play again</button></form>`+
			`</div>`,
			data.Finished, data.Score, data.Corrects, data.Skips)
		return err
	})
}
