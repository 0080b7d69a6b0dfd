package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"guessword/internal/config"
	"guessword/internal/game"
	"guessword/internal/handlers"
	"guessword/internal/metrics"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.Load(os.Getenv("GUESSWORD_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv(config.EnvPrefix+"ADDR") == "" {
		cfg.Addr = ":" + port
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	gameCfg, err := cfg.Game.Session()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game config")
	}

	store := game.NewStore(nil)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)
	store.OnCreate(recorder.Track)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load static assets")
	}
	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	homeHandler := handlers.NewHomeHandler(store, gameCfg)
	gameHandler := handlers.NewGameHandler(store, cfg.AllowedOrigins)

	homeHandler.RegisterRoutes(r)
	gameHandler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	// No WriteTimeout: event streams and websockets stay open for the whole
	// round.
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, store, cfg.SessionTTL())

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Disposing first closes event streams so Shutdown does not wait on them.
	n := store.DisposeAll()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Int("sessions_disposed", n).Msg("stopped")
}

// sweep disposes sessions older than ttl until ctx is done. A zero ttl
// disables it.
func sweep(ctx context.Context, store *game.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.Sweep(now, ttl)
		}
	}
}

//go:embed static/*
var embeddedStatic embed.FS
