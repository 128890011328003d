// Package config loads bot settings from defaults, an optional YAML file and
// CYCLES_* environment variables, in increasing order of precedence.
// Command-line flags are applied on top by the caller.
//
// Scoring weights are constants in package strategy and are not configurable.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key for environment overrides,
// e.g. CYCLES_SERVER_URL.
const EnvPrefix = "CYCLES"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	ServerURL      string        `mapstructure:"server_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// RecordDir enables parquet recording of every decision when set.
	RecordDir        string `mapstructure:"record_dir"`
	RecordFlushTicks int    `mapstructure:"record_flush_ticks"`

	Parallel bool `mapstructure:"parallel"`
	TUI      bool `mapstructure:"tui"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		ServerURL:        "ws://localhost:55001/ws",
		ConnectTimeout:   10 * time.Second,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     5 * time.Second,
		PingInterval:     15 * time.Second,
		LogLevel:         "info",
		LogFormat:        "console",
		RecordFlushTicks: 500,
	}
}

// Load reads the config. path may be empty, in which case only defaults and
// the environment are consulted.
func Load(path string) (Config, error) {
	vp := viper.New()

	def := Default()
	vp.SetDefault("server_url", def.ServerURL)
	vp.SetDefault("connect_timeout", def.ConnectTimeout)
	vp.SetDefault("read_timeout", def.ReadTimeout)
	vp.SetDefault("write_timeout", def.WriteTimeout)
	vp.SetDefault("ping_interval", def.PingInterval)
	vp.SetDefault("log_level", def.LogLevel)
	vp.SetDefault("log_format", def.LogFormat)
	vp.SetDefault("record_dir", def.RecordDir)
	vp.SetDefault("record_flush_ticks", def.RecordFlushTicks)
	vp.SetDefault("parallel", def.Parallel)
	vp.SetDefault("tui", def.TUI)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			vp.SetConfigType("yaml")
		}
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the bot cannot run with.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: server_url is required", ErrInvalid)
	}
	for name, d := range map[string]time.Duration{
		"connect_timeout": c.ConnectTimeout,
		"read_timeout":    c.ReadTimeout,
		"write_timeout":   c.WriteTimeout,
		"ping_interval":   c.PingInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, name, d)
		}
	}
	if c.RecordFlushTicks <= 0 {
		return fmt.Errorf("%w: record_flush_ticks must be positive, got %d", ErrInvalid, c.RecordFlushTicks)
	}
	return nil
}
