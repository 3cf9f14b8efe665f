package adapter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Content.Demo)
	assert.Equal(t, 300*time.Millisecond, cfg.Reader.TransitionWindow())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
content:
  source: https://books.example.com
  demo: false
storage:
  dir: /tmp/kahaani-data
reader:
  transition_ms: 120
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("KAHAANI_LOGGING_LEVEL", "debug")
	t.Setenv("KAHAANI_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.Content.Source)
	assert.True(t, cfg.Content.IsRemote())
	assert.False(t, cfg.Content.Demo)
	assert.Equal(t, "/tmp/kahaani-data", cfg.Storage.Dir)
	assert.Equal(t, 120*time.Millisecond, cfg.Reader.TransitionWindow())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("content: [unclosed"), 0644))

	_, err := loadConfig(viper.New(), dir)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Content.Source = "./books"
	cfg.Content.Demo = false
	cfg.Reader.TransitionMS = 0
	require.NoError(t, saveConfig(viper.New(), cfg, file))

	loaded, err := loadConfig(viper.New(), filepath.Dir(file))
	require.NoError(t, err)
	assert.Equal(t, "./books", loaded.Content.Source)
	assert.False(t, loaded.Content.IsRemote())
	assert.False(t, loaded.Content.Demo)
	assert.Equal(t, time.Duration(0), loaded.Reader.TransitionWindow())
}

func TestReaderConfig_NegativeWindow(t *testing.T) {
	assert.Equal(t, time.Duration(0), ReaderConfig{TransitionMS: -5}.TransitionWindow())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kahaani.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("opened book", "bookID", "1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &line))
	assert.Equal(t, "opened book", line["msg"])
	assert.Equal(t, "1", line["bookID"])
	assert.Equal(t, "kahaani", line["app"])
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/books")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
