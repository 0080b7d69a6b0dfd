// Package config loads server and game settings from defaults, an optional
// YAML file and GUESSWORD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"guessword/internal/game"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GUESSWORD_"

// Config is the process configuration.
type Config struct {
	Addr              string     `yaml:"addr" env:"ADDR"`
	LogLevel          string     `yaml:"log_level" env:"LOG_LEVEL"`
	AllowedOrigins    []string   `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	SessionTTLMinutes int        `yaml:"session_ttl_minutes" env:"SESSION_TTL_MINUTES"`
	Game              GameConfig `yaml:"game" envPrefix:"GAME_"`
}

// GameConfig holds the round settings. An empty WordsFile means the
// built-in word list.
type GameConfig struct {
	TotalSeconds          int    `yaml:"total_seconds" env:"TOTAL_SECONDS"`
	TickSeconds           int    `yaml:"tick_seconds" env:"TICK_SECONDS"`
	PanicThresholdSeconds int    `yaml:"panic_threshold_seconds" env:"PANIC_THRESHOLD_SECONDS"`
	WordsFile             string `yaml:"words_file" env:"WORDS_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := game.DefaultConfig()
	return Config{
		Addr:              ":8080",
		LogLevel:          "info",
		SessionTTLMinutes: 30,
		Game: GameConfig{
			TotalSeconds:          d.TotalSeconds,
			TickSeconds:           d.TickSeconds,
			PanicThresholdSeconds: d.PanicThresholdSeconds,
		},
	}
}

// Load reads path (skipped when empty) and then the process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with an explicit environment; nil means os.Environ.
func LoadWith(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the server settings. Game settings are checked by
// GameConfig.Session.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config: session ttl must not be negative, got %d", c.SessionTTLMinutes)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("config: log level: %w", err)
	}
	return lvl, nil
}

// SessionTTL is how long a session may live before the sweeper disposes it.
// Zero disables sweeping.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Session builds and validates the game configuration, reading WordsFile if
// set.
func (g GameConfig) Session() (game.Config, error) {
	words := game.CanonicalWords()
	if g.WordsFile != "" {
		raw, err := os.ReadFile(g.WordsFile)
		if err != nil {
			return game.Config{}, fmt.Errorf("read words file: %w", err)
		}
		words = game.ParseWords(raw)
	}
	cfg := game.Config{
		TotalSeconds:          g.TotalSeconds,
		TickSeconds:           g.TickSeconds,
		PanicThresholdSeconds: g.PanicThresholdSeconds,
		Words:                 words,
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
