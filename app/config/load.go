package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from, in increasing priority:
// 1. Defaults
// 2. Config file (-config flag, TODO_CONFIG, or ./todo.toml if present)
// 3. Environment variables
// 4. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	path, explicit := configFilePath(args)
	if path != "" {
		if err := loadConfigFile(cfg, path, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFilePath picks the config file before flags are parsed, since the
// file sits below flags in priority.
func configFilePath(args []string) (string, bool) {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := os.Getenv("TODO_CONFIG"); v != "" {
		return v, true
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, false
	}
	return "", false
}

func loadConfigFile(cfg *Config, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return err
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.ConfigFile = path
	return nil
}

// loadFromEnv overrides config from TODO_* environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_FEEDBACK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TODO_FEEDBACK_DELAY: %w", err)
		}
		cfg.FeedbackDelay = Duration{d}
	}
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TODO_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("TODO_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("TODO_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("TODO_REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := os.Getenv("TODO_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODO_REDIS_DB: %w", err)
		}
		cfg.Storage.RedisDB = n
	}
	if v := os.Getenv("TODO_NEO4J_URI"); v != "" {
		cfg.Storage.Neo4jURI = v
	}
	if v := os.Getenv("TODO_NEO4J_USER"); v != "" {
		cfg.Storage.Neo4jUser = v
	}
	if v := os.Getenv("TODO_NEO4J_PASSWORD"); v != "" {
		cfg.Storage.Neo4jPassword = v
	}
	return nil
}

// parseFlags defines and parses CLI flags on fs, defaulting each to the
// value loaded so far.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	var configFile string
	fs.StringVar(&configFile, "config", cfg.ConfigFile, "Path to TOML config file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.DurationVar(&cfg.FeedbackDelay.Duration, "feedback-delay", cfg.FeedbackDelay.Duration, "How long feedback messages stay visible")
	fs.StringVar(&cfg.Storage.Backend, "backend", cfg.Storage.Backend, "Storage backend (memory, sqlite, redis, neo4j)")
	fs.StringVar(&cfg.Storage.Key, "key", cfg.Storage.Key, "Storage slot holding the task list")
	fs.StringVar(&cfg.Storage.SQLitePath, "sqlite-path", cfg.Storage.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.Storage.RedisAddr, "redis-addr", cfg.Storage.RedisAddr, "Redis address")
	fs.IntVar(&cfg.Storage.RedisDB, "redis-db", cfg.Storage.RedisDB, "Redis database number")
	fs.StringVar(&cfg.Storage.Neo4jURI, "neo4j-uri", cfg.Storage.Neo4jURI, "Neo4j connection URI")
	fs.StringVar(&cfg.Storage.Neo4jUser, "neo4j-user", cfg.Storage.Neo4jUser, "Neo4j user")

	return fs.Parse(args)
}
