package arbor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[scene]
tick_rate = 30

[debug]
enabled = true
warn_tree_depth = 8
`))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Scene.TickRate)
	assert.Equal(t, "RootEntity", cfg.Scene.RootName, "missing keys keep defaults")
	assert.True(t, cfg.Debug.Enabled)
	assert.Equal(t, 8, cfg.Debug.WarnTreeDepth)
	assert.Equal(t, 1000, cfg.Debug.WarnChildCount)
	assert.Equal(t, DefaultConfig().Window, cfg.Window)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("[scene]\ntick_rate = 0\n"))
	assert.ErrorContains(t, err, "tick_rate must be positive")

	_, err = ParseConfig([]byte("[scene\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arbor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	for _, tc := range []struct {
		name  string
		cfg   LoggingConfig
		level zapcore.Level
	}{
		{"console debug", LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"json warn", LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{"bad level", LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			log, err := NewLogger(tc.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tc.level))
			assert.False(t, log.Core().Enabled(tc.level-1))
		})
	}
}
