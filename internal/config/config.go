package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "presence-stats.toml"

type DatabaseConfig struct {
	DSN                    string `toml:"dsn"`
	MaxOpenConns           int    `toml:"max_open_conns"`
	MaxIdleConns           int    `toml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `toml:"conn_max_lifetime_minutes"`
	MigrateOnStart         bool   `toml:"migrate_on_start"`
}

// RedisConfig selects the bucket cache. With an empty URL buckets are
// cached in process memory.
type RedisConfig struct {
	URL       string `toml:"url"`
	KeyPrefix string `toml:"key_prefix"`
}

type CacheConfig struct {
	WriteWorkers         int `toml:"write_workers"`
	WriteQueueSize       int `toml:"write_queue_size"`
	WriteTimeoutSeconds  int `toml:"write_timeout_seconds"`
	MaxConcurrentBuckets int `toml:"max_concurrent_buckets"`
}

type PresenceConfig struct {
	GraceMinutes int `toml:"grace_minutes"`
}

type Config struct {
	ListenAddr string         `toml:"listen_addr"`
	LogLevel   string         `toml:"log_level"`
	Timezone   string         `toml:"timezone"`
	Database   DatabaseConfig `toml:"database"`
	Redis      RedisConfig    `toml:"redis"`
	Cache      CacheConfig    `toml:"cache"`
	Presence   PresenceConfig `toml:"presence"`
}

func NewDefault() *Config {
	return &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Timezone:   "Local",
		Database: DatabaseConfig{
			MaxOpenConns:           20,
			MaxIdleConns:           10,
			ConnMaxLifetimeMinutes: 30,
		},
		Redis: RedisConfig{KeyPrefix: "presence-stats:"},
		Cache: CacheConfig{
			WriteWorkers:         4,
			WriteQueueSize:       256,
			WriteTimeoutSeconds:  5,
			MaxConcurrentBuckets: 32,
		},
		Presence: PresenceConfig{GraceMinutes: 5},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv
// outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("LISTEN_ADDR", &c.ListenAddr)
	set("POSTGRES_DSN", &c.Database.DSN)
	set("REDIS_URL", &c.Redis.URL)
	set("STATS_TIMEZONE", &c.Timezone)
	set("LOG_LEVEL", &c.LogLevel)
}

func (c *Config) Normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Database.MaxOpenConns <= 0 || c.Database.MaxIdleConns < 0 || c.Database.ConnMaxLifetimeMinutes <= 0 {
		return errors.New("database pool settings must be positive")
	}
	if c.Cache.WriteWorkers <= 0 || c.Cache.WriteQueueSize <= 0 || c.Cache.WriteTimeoutSeconds <= 0 {
		return errors.New("cache write pool settings must be positive")
	}
	if c.Cache.MaxConcurrentBuckets <= 0 {
		return errors.New("cache.max_concurrent_buckets must be positive")
	}
	if c.Presence.GraceMinutes <= 0 {
		return errors.New("presence.grace_minutes must be positive")
	}
	return nil
}

// Location is only valid after Validate succeeded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.Database.ConnMaxLifetimeMinutes) * time.Minute
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Cache.WriteTimeoutSeconds) * time.Second
}

func (c *Config) Grace() time.Duration {
	return time.Duration(c.Presence.GraceMinutes) * time.Minute
}
