// Package config loads calc-engine settings from YAML, .env and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Throttle  ThrottleConfig  `yaml:"throttle"`
	Retention RetentionConfig `yaml:"retention"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects the calculation store. DatabaseURL wins over
// SQLitePath; with neither set the server keeps history in memory.
type StorageConfig struct {
	DatabaseURL string        `yaml:"database_url"`
	SQLitePath  string        `yaml:"sqlite_path"`
	RedisURL    string        `yaml:"redis_url"` // only used with DatabaseURL
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// ThrottleConfig sets the per-client evaluation rate.
type ThrottleConfig struct {
	PerSecond float64 `yaml:"per_second"` // 0 disables
	Burst     int     `yaml:"burst"`
}

// RetentionConfig schedules history pruning.
type RetentionConfig struct {
	Cron   string        `yaml:"cron"` // six fields, seconds first
	MaxAge time.Duration `yaml:"max_age"`
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file at path (a missing file is fine), loads .env if
// present, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DatabaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("RETENTION_CRON"); v != "" {
		cfg.Retention.Cron = v
	}
	if v := os.Getenv("RETENTION_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config.Load: RETENTION_MAX_AGE: %w", err)
		}
		cfg.Retention.MaxAge = d
	}
	if v := os.Getenv("THROTTLE_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config.Load: THROTTLE_PER_SECOND: %w", err)
		}
		cfg.Throttle.PerSecond = f
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Storage.CacheTTL <= 0 {
		cfg.Storage.CacheTTL = 30 * time.Second
	}
	if cfg.Throttle.Burst <= 0 {
		cfg.Throttle.Burst = 20
	}
	if cfg.Retention.Cron == "" {
		cfg.Retention.Cron = "0 0 3 * * *"
	}
	if cfg.Retention.MaxAge <= 0 {
		cfg.Retention.MaxAge = 30 * 24 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks the settings that would otherwise fail at startup.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server.port %q is not a valid port", c.Server.Port)
	}
	if c.Storage.RedisURL != "" && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("storage.redis_url requires storage.database_url")
	}
	if c.Throttle.PerSecond < 0 {
		return fmt.Errorf("throttle.per_second must not be negative")
	}
	if _, err := ParseSchedule(c.Retention.Cron); err != nil {
		return fmt.Errorf("retention.cron %q: %w", c.Retention.Cron, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// ParseSchedule parses a six-field cron expression (seconds first), the
// same dialect the retention scheduler runs with.
func ParseSchedule(spec string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return parser.Parse(spec)
}
