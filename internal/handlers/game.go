package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
	"guessword/views/components"
	"guessword/views/pages"
)

const keepAliveInterval = 25 * time.Second

type GameHandler struct {
	store    *game.Store
	upgrader websocket.Upgrader
}

// NewGameHandler serves game pages, actions and live streams. Websocket
// upgrades are accepted from allowedOrigins, or same-origin only when empty.
func NewGameHandler(store *game.Store, allowedOrigins []string) *GameHandler {
	return &GameHandler{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.gamePage)
		r.Delete("/", h.disposeGame)
		r.Get("/state", h.state)
		r.Post("/correct", h.action((*game.Session).Correct))
		r.Post("/skip", h.action((*game.Session).Skip))
		r.Post("/finished/ack", h.action((*game.Session).AcknowledgeFinished))
		r.Post("/buzz/ack", h.action((*game.Session).AcknowledgeBuzz))
		r.Get("/stream", h.stream)
		r.Get("/ws", h.socket)
	})
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, ok := h.store.GetSession(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snapshot := sess.Snapshot()
	gameID := snapshot.ID
	data := viewmodel.GamePage{
		Title:     "Guess the Word",
		GameID:    gameID,
		StreamURL: "/game/" + gameID + "/stream",
		SocketURL: "/game/" + gameID + "/ws",
		Word:      buildWordFragment(snapshot),
		Score:     viewmodel.ScoreFragment{Score: snapshot.Score},
		Timer:     buildTimerFragment(snapshot),
		Finished:  buildFinishedFragment(snapshot),
	}
	render(w, r, pages.GamePage(data))
}

func (h *GameHandler) state(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// action applies fn to the session. Script requests (Hx-Request) get 204,
// plain form posts are redirected back to the game page.
func (h *GameHandler) action(fn func(*game.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.session(w, r)
		if !ok {
			return
		}
		fn(sess)
		if r.Header.Get("Hx-Request") == "true" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, "/game/"+sess.ID(), http.StatusSeeOther)
	}
}

func (h *GameHandler) disposeGame(w http.ResponseWriter, r *http.Request) {
	if !h.store.Dispose(chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	hub, ok := h.store.Broadcaster(sess.ID())
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	send := func(events ...string) {
		snapshot := sess.Snapshot()
		for _, event := range events {
			name, data := renderEvent(r, event, snapshot)
			writeSSE(w, name, data)
		}
		flusher.Flush()
	}

	send(game.EventTimer, game.EventScore, game.EventWord, game.EventFinished)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub:
			if !ok {
				// Session disposed.
				writeSSE(w, "closed", "")
				flusher.Flush()
				return
			}
			send(event)
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// renderEvent builds the SSE name and payload for a published event: an
// HTML fragment, or JSON for the buzz cue carried by the event.
func renderEvent(r *http.Request, event string, snapshot game.Snapshot) (name, data string) {
	name, cue, err := game.ParseEvent(event)
	if err != nil {
		log.Debug().Err(err).Str("session_id", snapshot.ID).Msg("unreadable session event")
	}
	switch name {
	case game.EventWord:
		data = renderToString(r, components.WordFragment(buildWordFragment(snapshot)))
	case game.EventScore:
		data = renderToString(r, components.ScoreFragment(viewmodel.ScoreFragment{Score: snapshot.Score}))
	case game.EventTimer:
		data = renderToString(r, components.TimerFragment(buildTimerFragment(snapshot)))
	case game.EventFinished:
		// Finishing also locks the answer buttons.
		data = renderToString(r, components.FinishedFragment(buildFinishedFragment(snapshot))) +
			"\n" + renderToString(r, components.WordFragment(buildWordFragment(snapshot)))
	case game.EventBuzz:
		b, _ := json.Marshal(buildBuzzPayload(cue))
		data = string(b)
	}
	return name, data
}

func buildWordFragment(snapshot game.Snapshot) viewmodel.WordFragment {
	return viewmodel.WordFragment{
		GameID: snapshot.ID,
		Word:   snapshot.Word,
		Locked: !snapshot.Active(),
	}
}

func buildTimerFragment(snapshot game.Snapshot) viewmodel.TimerFragment {
	return viewmodel.NewTimerFragment(snapshot.RemainingSeconds, snapshot.TotalSeconds, snapshot.PanicSeconds)
}

func buildFinishedFragment(snapshot game.Snapshot) viewmodel.FinishedFragment {
	return viewmodel.FinishedFragment{
		GameID:   snapshot.ID,
		Over:     snapshot.Expired,
		Finished: snapshot.Finished,
		Score:    snapshot.Score,
		Corrects: snapshot.Corrects,
		Skips:    snapshot.Skips,
	}
}

func buildBuzzPayload(cue game.BuzzCue) viewmodel.BuzzPayload {
	return viewmodel.BuzzPayload{
		Cue:     cue.String(),
		Pattern: cue.PatternMillis(),
	}
}
