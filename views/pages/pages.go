// Package pages renders full HTML documents.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"guessword/internal/viewmodel"
	"guessword/views/components"
)

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head>`+
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>%s</title><link rel="stylesheet" href="/static/app.css"></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script src="/static/app.js"></script></body></html>`)
		return err
	})
}

// HomePage renders the landing page with the new-game form.
func HomePage(data viewmodel.HomePage) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<main class="home"><h1>%s</h1>`+
			`<p>Guess as many words as you can in %s.</p>`+
			`<form method="post" action="/games"><button type="submit">Start game</button></form>`+
			`<p class="muted">%d games in progress</p></main>`,
			templ.EscapeString(data.Title),
			templ.EscapeString(viewmodel.FormatElapsed(data.TotalSeconds)),
			data.ActiveSessions)
		return err
	}))
}

// GamePage renders a running game. The client script subscribes to
// StreamURL and swaps fragments by id.
func GamePage(data viewmodel.GamePage) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<main class="game" data-game-id="%s" data-stream="%s" data-socket="%s">`,
			templ.EscapeString(data.GameID),
			templ.EscapeString(data.StreamURL),
			templ.EscapeString(data.SocketURL)); err != nil {
			return err
		}
		for _, c := range []templ.Component{
			components.TimerFragment(data.Timer),
			components.ScoreFragment(data.Score),
			components.WordFragment(data.Word),
			components.FinishedFragment(data.Finished),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	}))
}
