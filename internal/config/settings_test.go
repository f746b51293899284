package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STAGE", "WORLD_WIDTH", "WORLD_HEIGHT", "ASTEROIDS", "SEED", "TICK_MS"} {
		t.Setenv(k, "")
	}

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, 16*time.Millisecond, s.Tick)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STAGE", "2")
	t.Setenv("WORLD_WIDTH", "1024")
	t.Setenv("WORLD_HEIGHT", "300")
	t.Setenv("ASTEROIDS", "5")
	t.Setenv("SEED", "42")
	t.Setenv("TICK_MS", "20")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Stage)
	assert.Equal(t, 1024, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.Equal(t, 5, s.Asteroids)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 20*time.Millisecond, s.Tick)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("STAGE", "three")
	t.Setenv("WORLD_WIDTH", "")
	t.Setenv("WORLD_HEIGHT", "")
	t.Setenv("ASTEROIDS", "")
	t.Setenv("SEED", "")
	t.Setenv("TICK_MS", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"stage too low", func(s *Settings) { s.Stage = 0 }},
		{"stage too high", func(s *Settings) { s.Stage = 4 }},
		{"zero width", func(s *Settings) { s.Width = 0 }},
		{"negative asteroids", func(s *Settings) { s.Asteroids = -1 }},
		{"zero tick", func(s *Settings) { s.Tick = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidValue)
		})
	}
	assert.NoError(t, DefaultSettings().Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.env")
	require.NoError(t, os.WriteFile(path, []byte("SHIPDRIFT_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("SHIPDRIFT_TEST_KEY", "")
	os.Unsetenv("SHIPDRIFT_TEST_KEY")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", GetEnv("SHIPDRIFT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SHIPDRIFT_TEST_UNSET", "fallback"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("LOG_LEVEL", "warn")
	logger, err := NewLogger(&buf, "test")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")

	t.Setenv("LOG_LEVEL", "chatty")
	_, err = NewLogger(&buf, "test")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
