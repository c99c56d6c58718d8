// Package config loads the widget's settings from defaults, a TOML file,
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNeo4j  = "neo4j"
)

// DefaultConfigFile is read from the working directory when no other
// config path is given.
const DefaultConfigFile = "todo.toml"

// Config is the complete runtime configuration.
type Config struct {
	Addr          string   `toml:"addr"`
	LogLevel      string   `toml:"log_level"`
	LogFormat     string   `toml:"log_format"`
	FeedbackDelay Duration `toml:"feedback_delay"`
	Storage       Storage  `toml:"storage"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `toml:"-"`
}

// Storage selects and configures the key-value backend holding the task slot.
type Storage struct {
	Backend string `toml:"backend"`
	Key     string `toml:"key"`

	SQLitePath string `toml:"sqlite_path"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	Neo4jURI      string `toml:"neo4j_uri"`
	Neo4jUser     string `toml:"neo4j_user"`
	Neo4jPassword string `toml:"neo4j_password"`
}

// Duration is a time.Duration that reads from TOML strings like "1s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.Addr = ":8080"
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
	cfg.FeedbackDelay = Duration{time.Second}
	cfg.Storage = Storage{
		Backend:    BackendSQLite,
		Key:        "tasks",
		SQLitePath: "todo.db",
		RedisAddr:  "localhost:6379",
		Neo4jURI:   "neo4j://localhost:7687",
		Neo4jUser:  "neo4j",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendNeo4j:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage.key: must not be empty")
	}
	if c.Storage.Backend == BackendSQLite && strings.TrimSpace(c.Storage.SQLitePath) == "" {
		return errors.New("storage.sqlite_path: must not be empty")
	}
	if c.FeedbackDelay.Duration <= 0 {
		return fmt.Errorf("feedback_delay: must be positive, got %s", c.FeedbackDelay.Duration)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr: must not be empty")
	}
	return nil
}
