package handlers

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// socketMessage is sent to websocket clients on every session event.
type socketMessage struct {
	Type  string                 `json:"type"`
	State game.Snapshot          `json:"state"`
	Buzz  *viewmodel.BuzzPayload `json:"buzz,omitempty"`
}

// socketCommand is read from websocket clients.
type socketCommand struct {
	Action string `json:"action"`
}

var socketActions = map[string]func(*game.Session){
	"correct":      (*game.Session).Correct,
	"skip":         (*game.Session).Skip,
	"ack_finished": (*game.Session).AcknowledgeFinished,
	"ack_buzz":     (*game.Session).AcknowledgeBuzz,
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		// Upgrader falls back to its same-origin check.
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

func (h *GameHandler) socket(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	hub, ok := h.store.Broadcaster(sess.ID())
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Error().Err(err).Str("session_id", sess.ID()).Msg("websocket upgrade failed")
		return
	}

	sub := hub.Subscribe()
	done := make(chan struct{})
	go writePump(conn, sess, sub, done)
	readPump(conn, sess)
	close(done)
	hub.Unsubscribe(sub)
}

// readPump applies client commands until the connection fails.
func readPump(conn *websocket.Conn, sess *game.Session) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("session_id", sess.ID()).Msg("unexpected websocket close")
			}
			return
		}
		var cmd socketCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Debug().Err(err).Str("session_id", sess.ID()).Msg("ignoring malformed websocket command")
			continue
		}
		fn, ok := socketActions[cmd.Action]
		if !ok {
			log.Debug().Str("session_id", sess.ID()).Str("action", cmd.Action).Msg("ignoring unknown websocket command")
			continue
		}
		fn(sess)
	}
}

// writePump owns all writes to conn: an initial snapshot, one message per
// session event, and pings.
func writePump(conn *websocket.Conn, sess *game.Session, events <-chan string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	if err := writeSocketMessage(conn, "state", sess.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := writeSocketMessage(conn, event, sess.Snapshot()); err != nil {
				log.Debug().Err(err).Str("session_id", sess.ID()).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeSocketMessage(conn *websocket.Conn, event string, snapshot game.Snapshot) error {
	name, cue, err := game.ParseEvent(event)
	if err != nil {
		log.Debug().Err(err).Str("session_id", snapshot.ID).Msg("unreadable session event")
	}
	msg := socketMessage{Type: name, State: snapshot}
	if name == game.EventBuzz {
		payload := buildBuzzPayload(cue)
		msg.Buzz = &payload
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
