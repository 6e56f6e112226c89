package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourguide/internal/config"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"TOUR_API_KEY":      "secret",
		"TOUR_API_BASE_URL": "https://apis.data.go.kr/B551011",
		"BEARER_TOKEN":      "token",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "KoreaTravelGuide", cfg.TourMobileApp)
	assert.Equal(t, 10*time.Second, cfg.TourTimeout)
	assert.Equal(t, config.BackendMemory, cfg.CacheBackend)
	assert.Equal(t, "Asia/Seoul", cfg.EvictLocation.String())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 50, cfg.LogMaxSizeMB)
	assert.Equal(t, 3, cfg.LogMaxBackups)
	assert.Equal(t, 7, cfg.LogMaxAgeDays)
}

func TestLoad_Overrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9000"
	env["TOUR_HTTP_TIMEOUT"] = "3s"
	env["CACHE_BACKEND"] = "Redis"
	env["REDIS_URL"] = "redis://localhost:6379"
	env["CACHE_EVICT_TIMEZONE"] = "UTC"
	env["LOG_FORMAT"] = "text"

	cfg, err := config.Load(envOf(env))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.TourTimeout)
	assert.Equal(t, config.BackendRedis, cfg.CacheBackend)
	assert.Equal(t, time.UTC, cfg.EvictLocation)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantMsg string
	}{
		{"missing api key", func(e map[string]string) { delete(e, "TOUR_API_KEY") }, "TourAPIKey"},
		{"missing bearer", func(e map[string]string) { delete(e, "BEARER_TOKEN") }, "BearerToken"},
		{"bad base url", func(e map[string]string) { e["TOUR_API_BASE_URL"] = "not a url" }, "TourAPIBaseURL"},
		{"unknown backend", func(e map[string]string) { e["CACHE_BACKEND"] = "memcached" }, "CacheBackend"},
		{"redis without url", func(e map[string]string) { e["CACHE_BACKEND"] = "redis" }, "RedisURL"},
		{"postgres without url", func(e map[string]string) { e["CACHE_BACKEND"] = "postgres" }, "DatabaseURL"},
		{"bad timeout", func(e map[string]string) { e["TOUR_HTTP_TIMEOUT"] = "soon" }, "TOUR_HTTP_TIMEOUT"},
		{"zero timeout", func(e map[string]string) { e["TOUR_HTTP_TIMEOUT"] = "0s" }, "TourTimeout"},
		{"bad zone", func(e map[string]string) { e["CACHE_EVICT_TIMEZONE"] = "Mars/Olympus" }, "CACHE_EVICT_TIMEZONE"},
		{"bad port", func(e map[string]string) { e["PORT"] = "http" }, "Port"},
		{"bad log size", func(e map[string]string) { e["LOG_MAX_SIZE_MB"] = "big" }, "LOG_MAX_SIZE_MB"},
		{"bad log format", func(e map[string]string) { e["LOG_FORMAT"] = "xml" }, "LogFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)

			_, err := config.Load(envOf(env))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadDotEnv_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, config.LoadDotEnv())
}
