// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for containers without /usr/share/zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Cache backends selectable through CACHE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full server configuration.
type Config struct {
	Port        string `validate:"required,numeric"`
	BearerToken string `validate:"required"`

	TourAPIKey     string        `validate:"required"`
	TourAPIBaseURL string        `validate:"required,url"`
	TourMobileApp  string        `validate:"required"`
	TourTimeout    time.Duration `validate:"gt=0"`

	CacheBackend  string         `validate:"oneof=memory redis postgres"`
	RedisURL      string         `validate:"required_if=CacheBackend redis"`
	DatabaseURL   string         `validate:"required_if=CacheBackend postgres"`
	EvictTimezone string         `validate:"required"`
	EvictLocation *time.Location `validate:"-"`

	LogLevel      string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat     string `validate:"oneof=json text"`
	LogDir        string
	LogMaxSizeMB  int `validate:"gte=0"`
	LogMaxBackups int `validate:"gte=0"`
	LogMaxAgeDays int `validate:"gte=0"`
}

// LoadDotEnv reads .env from the working directory when it exists.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load builds a Config from getenv and validates it.
func Load(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	timeout, err := time.ParseDuration(env("TOUR_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("%w: TOUR_HTTP_TIMEOUT: %v", ErrInvalidConfig, err)
	}

	cfg := &Config{
		Port:           env("PORT", "8080"),
		BearerToken:    env("BEARER_TOKEN", ""),
		TourAPIKey:     env("TOUR_API_KEY", ""),
		TourAPIBaseURL: env("TOUR_API_BASE_URL", ""),
		TourMobileApp:  env("TOUR_MOBILE_APP", "KoreaTravelGuide"),
		TourTimeout:    timeout,
		CacheBackend:   strings.ToLower(env("CACHE_BACKEND", BackendMemory)),
		RedisURL:       env("REDIS_URL", ""),
		DatabaseURL:    env("DATABASE_URL", ""),
		EvictTimezone:  env("CACHE_EVICT_TIMEZONE", "Asia/Seoul"),
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFormat:      strings.ToLower(env("LOG_FORMAT", "json")),
		LogDir:         env("LOG_DIR", ""),
	}

	for _, f := range []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"LOG_MAX_SIZE_MB", 50, &cfg.LogMaxSizeMB},
		{"LOG_MAX_BACKUPS", 3, &cfg.LogMaxBackups},
		{"LOG_MAX_AGE_DAYS", 7, &cfg.LogMaxAgeDays},
	} {
		n, err := strconv.Atoi(env(f.key, strconv.Itoa(f.fallback)))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.key, err)
		}
		*f.dst = n
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, describe(err))
	}

	loc, err := time.LoadLocation(cfg.EvictTimezone)
	if err != nil {
		return nil, fmt.Errorf("%w: CACHE_EVICT_TIMEZONE: %v", ErrInvalidConfig, err)
	}
	cfg.EvictLocation = loc

	return cfg, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
