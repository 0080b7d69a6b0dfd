package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
	"guessword/views/pages"
)

type HomeHandler struct {
	store *game.Store
	cfg   game.Config
}

// NewHomeHandler serves the landing page; new sessions use cfg.
func NewHomeHandler(store *game.Store, cfg game.Config) *HomeHandler {
	return &HomeHandler{store: store, cfg: cfg}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/games", h.createGame)
	r.Get("/healthz", h.healthz)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:          "Guess the Word",
		TotalSeconds:   h.cfg.TotalSeconds,
		ActiveSessions: h.store.Len(),
	}))
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.CreateSession(h.cfg)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		http.Error(w, "could not start game", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID(), http.StatusSeeOther)
}

func (h *HomeHandler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.store.Len(),
	})
}
