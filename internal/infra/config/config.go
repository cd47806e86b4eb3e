package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Dataset     DatasetConfig     `yaml:"dataset"`
	Preferences PreferencesConfig `yaml:"preferences"`
	History     HistoryConfig     `yaml:"history"`
	Export      ExportConfig      `yaml:"export"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// DatasetConfig points at the film/developer reference data. An empty path
// selects the dataset compiled into the binary.
type DatasetConfig struct {
	Path             string `yaml:"path"`
	RequireOnStartup bool   `yaml:"requireOnStartup"`
}

// PreferencesConfig controls profile preference storage.
type PreferencesConfig struct {
	TTL   time.Duration `yaml:"ttl"`
	Redis RedisConfig   `yaml:"redis"`
}

// HistoryConfig controls calculation history storage and listing.
type HistoryConfig struct {
	DefaultLimit   int            `yaml:"defaultLimit"`
	MaxLimit       int            `yaml:"maxLimit"`
	MemoryCapacity int            `yaml:"memoryCapacity"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// ExportConfig controls where exported calculations are written.
type ExportConfig struct {
	Prefix string   `yaml:"prefix"`
	R2     R2Config `yaml:"r2"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// R2Config contains S3-compatible object storage settings.
type R2Config struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("DATASET_REQUIRE_ON_STARTUP"); v != "" {
		cfg.Dataset.RequireOnStartup = parseBool(v)
	}
	if v := os.Getenv("PREFERENCES_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Preferences.TTL = parsed
		}
	}
	if v := os.Getenv("PREFERENCES_REDIS_ENABLED"); v != "" {
		cfg.Preferences.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("PREFERENCES_REDIS_ADDR"); v != "" {
		cfg.Preferences.Redis.Addr = v
	}
	if v := os.Getenv("HISTORY_DEFAULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.DefaultLimit = parsed
		}
	}
	if v := os.Getenv("HISTORY_MAX_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxLimit = parsed
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("EXPORT_PREFIX"); v != "" {
		cfg.Export.Prefix = v
	}
	if v := os.Getenv("EXPORT_R2_ENABLED"); v != "" {
		cfg.Export.R2.Enabled = parseBool(v)
	}
	if v := os.Getenv("EXPORT_R2_ENDPOINT"); v != "" {
		cfg.Export.R2.Endpoint = v
	}
	if v := os.Getenv("EXPORT_R2_ACCESS_KEY"); v != "" {
		cfg.Export.R2.AccessKey = v
	}
	if v := os.Getenv("EXPORT_R2_SECRET_KEY"); v != "" {
		cfg.Export.R2.SecretKey = v
	}
	if v := os.Getenv("EXPORT_R2_BUCKET"); v != "" {
		cfg.Export.R2.Bucket = v
	}
	if v := os.Getenv("EXPORT_R2_REGION"); v != "" {
		cfg.Export.R2.Region = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/dataset/reload",
					"/api/v1/exports",
				},
			},
		},
		Dataset: DatasetConfig{
			RequireOnStartup: true,
		},
		Preferences: PreferencesConfig{
			TTL: 0,
		},
		History: HistoryConfig{
			DefaultLimit:   20,
			MaxLimit:       200,
			MemoryCapacity: 1000,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Export: ExportConfig{
			Prefix: "exports",
			R2: R2Config{
				Region: "auto",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Preferences.TTL < 0 {
		return errors.New("preferences.ttl cannot be negative")
	}
	if c.Preferences.Redis.Enabled && strings.TrimSpace(c.Preferences.Redis.Addr) == "" {
		return errors.New("preferences.redis.addr cannot be empty when redis is enabled")
	}
	if c.History.DefaultLimit <= 0 {
		return errors.New("history.defaultLimit must be positive")
	}
	if c.History.MaxLimit < c.History.DefaultLimit {
		return errors.New("history.maxLimit must be at least history.defaultLimit")
	}
	if c.History.MemoryCapacity < 0 {
		return errors.New("history.memoryCapacity cannot be negative")
	}
	if strings.Trim(strings.TrimSpace(c.Export.Prefix), "/") == "" {
		return errors.New("export.prefix cannot be empty")
	}
	if c.Export.R2.Enabled {
		if strings.TrimSpace(c.Export.R2.Endpoint) == "" {
			return errors.New("export.r2.endpoint cannot be empty when r2 is enabled")
		}
		if strings.TrimSpace(c.Export.R2.Bucket) == "" {
			return errors.New("export.r2.bucket cannot be empty when r2 is enabled")
		}
	}
	return nil
}
