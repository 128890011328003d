package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_url: ws://arena:9000/ws
read_timeout: 2s
log_level: debug
record_dir: /tmp/games
parallel: true
`), 0o644))

	t.Setenv("CYCLES_SERVER_URL", "ws://override:1/ws")
	t.Setenv("CYCLES_WRITE_TIMEOUT", "750ms")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://override:1/ws", cfg.ServerURL, "env beats file")
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.WriteTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/games", cfg.RecordDir)
	assert.True(t, cfg.Parallel)
	assert.False(t, cfg.TUI)
	assert.Equal(t, Default().ConnectTimeout, cfg.ConnectTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CYCLES_READ_TIMEOUT", "0s")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ServerURL = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.PingInterval = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.RecordFlushTicks = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
