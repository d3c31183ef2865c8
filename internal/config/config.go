// Package config loads pipeline settings from defaults, an optional YAML
// file, and SKIM_-prefixed environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EngineConfig names one upstream search backend.
type EngineConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// Config carries every tunable of the pipeline.
type Config struct {
	Engines []EngineConfig `mapstructure:"engines"`

	Workers int `mapstructure:"workers"`
	Quota   int `mapstructure:"quota"`

	MaxRetries  int           `mapstructure:"max_retries"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Fingerprint string        `mapstructure:"fingerprint"`
	UserAgents  []string      `mapstructure:"user_agents"`

	RedisAddr string `mapstructure:"redis_addr"`

	// ArchiveBackend is one of none, json, sqlite, postgres.
	ArchiveBackend string `mapstructure:"archive_backend"`
	ArchiveDSN     string `mapstructure:"archive_dsn"`

	MetricsPort int `mapstructure:"metrics_port"`
}

// Load reads configuration. Path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("workers", 5)
	v.SetDefault("quota", 5)
	v.SetDefault("max_retries", 2)
	v.SetDefault("backoff_base", "300ms")
	v.SetDefault("timeout", "5s")
	v.SetDefault("fingerprint", "chrome")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("archive_backend", "json")
	v.SetDefault("archive_dsn", "skim_archive.ndjson")
	v.SetDefault("metrics_port", 0)

	v.SetEnvPrefix("SKIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ArchiveBackend {
	case "none", "json", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown archive backend %q", c.ArchiveBackend)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if c.Quota < 1 {
		return fmt.Errorf("config: quota must be positive, got %d", c.Quota)
	}
	for _, e := range c.Engines {
		if e.Name == "" || e.URL == "" {
			return fmt.Errorf("config: engine entries need both name and url")
		}
	}
	return nil
}
