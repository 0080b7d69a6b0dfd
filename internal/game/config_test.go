package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10, cfg.TotalSeconds)
	assert.Equal(t, 1, cfg.TickSeconds)
	assert.Equal(t, 3, cfg.PanicThresholdSeconds)
	assert.Equal(t, CanonicalWords(), cfg.Words)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 10*time.Second, cfg.total())
	assert.Equal(t, time.Second, cfg.interval())
	assert.Equal(t, 3*time.Second, cfg.panicThreshold())
}

func TestConfig_Validate(t *testing.T) {
	ok := Config{TotalSeconds: 60, TickSeconds: 5, PanicThresholdSeconds: 0, Words: []string{"x"}}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.TickSeconds = 7
	err := bad.Validate()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "interval must divide total")
}

func TestConfig_ValidateTiming(t *testing.T) {
	base := Config{TotalSeconds: 10, TickSeconds: 1, Words: []string{"x"}}
	tests := []struct {
		name  string
		total int
		tick  int
		want  string
	}{
		{"zero total", 0, 1, "total must be positive"},
		{"negative tick", 10, -1, "interval must be positive"},
		{"uneven tick", 10, 4, "interval must divide total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.TotalSeconds = tt.total
			cfg.TickSeconds = tt.tick
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
