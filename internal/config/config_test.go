package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guessword/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith("", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())

	gc, err := cfg.Game.Session()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), gc)
}

func TestLoadWith_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, "guessword.yaml", `
addr: ":9000"
log_level: debug
allowed_origins: ["https://a.example"]
game:
  total_seconds: 60
  tick_seconds: 2
`)
	cfg, err := LoadWith(path, map[string]string{
		"GUESSWORD_GAME_TICK_SECONDS":   "5",
		"GUESSWORD_ALLOWED_ORIGINS":     "https://b.example, https://c.example",
		"GUESSWORD_SESSION_TTL_MINUTES": "0",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 60, cfg.Game.TotalSeconds)
	assert.Equal(t, 5, cfg.Game.TickSeconds)
	assert.Equal(t, 3, cfg.Game.PanicThresholdSeconds, "unset keys keep their defaults")
	assert.Equal(t, time.Duration(0), cfg.SessionTTL())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func TestLoadWith_MissingFile(t *testing.T) {
	_, err := LoadWith(filepath.Join(t.TempDir(), "nope.yaml"), map[string]string{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWith_BadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "addr: [unterminated")
	_, err := LoadWith(path, map[string]string{})
	assert.Error(t, err)
}

func TestLoadWith_BadEnv(t *testing.T) {
	_, err := LoadWith("", map[string]string{"GUESSWORD_GAME_TOTAL_SECONDS": "ten"})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Addr = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SessionTTLMinutes = -1
	assert.Error(t, cfg.Validate())
}

func TestGameConfig_Session_WordsFile(t *testing.T) {
	path := writeFile(t, "words.txt", "# custom\napple\n\nbanana\n")
	gc := Default().Game
	gc.WordsFile = path

	cfg, err := gc.Session()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana"}, cfg.Words)
}

func TestGameConfig_Session_Invalid(t *testing.T) {
	gc := Default().Game
	gc.TickSeconds = 4
	_, err := gc.Session()
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	gc = Default().Game
	gc.WordsFile = writeFile(t, "empty.txt", "# nothing here\n")
	_, err = gc.Session()
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	gc = Default().Game
	gc.WordsFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err = gc.Session()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
