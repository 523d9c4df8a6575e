package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.SortBlocks)
	assert.Equal(t, "sse", cfg.DefaultGame)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nifkit-config.yaml")
	data := "output_format: json\nlog_level: debug\nsort_blocks: false\ndefault_game: fo4\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SortBlocks)
	assert.Equal(t, "fo4", cfg.DefaultGame)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nifkit-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))
	t.Setenv("NIFKIT_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelWarn, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := (&Config{LogLevel: tt.in}).Level()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestLoadRejectsUnknownGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nifkit-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_game: morrowind\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "default_game")
}
