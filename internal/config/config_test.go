package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"INVOICES_PRIMARY.ENV":                 "local",
		"INVOICES_SERVER.PORT":                 "8080",
		"INVOICES_SERVER.READ_TIMEOUT":         "30",
		"INVOICES_SERVER.WRITE_TIMEOUT":        "30",
		"INVOICES_SERVER.IDLE_TIMEOUT":         "60",
		"INVOICES_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"INVOICES_DATABASE.HOST":               "localhost",
		"INVOICES_DATABASE.PORT":               "5432",
		"INVOICES_DATABASE.USER":               "postgres",
		"INVOICES_DATABASE.PASSWORD":           "postgres",
		"INVOICES_DATABASE.NAME":               "invoices",
		"INVOICES_DATABASE.SSL_MODE":           "disable",
		"INVOICES_DATABASE.MAX_OPEN_CONNS":     "25",
		"INVOICES_DATABASE.MAX_IDLE_CONNS":     "25",
		"INVOICES_DATABASE.CONN_MAX_LIFETIME":  "300",
		"INVOICES_DATABASE.CONN_MAX_IDLE_TIME": "300",
		"INVOICES_REDIS.ADDRESS":               "localhost:6379",
		"INVOICES_AUTH.SECRET_KEY":             "sk_test",
		"INVOICES_INTEGRATION.RESEND_API_KEY":  "re_test",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.RateLimit)
	assert.Equal(t, DefaultRouteCacheTTL, cfg.Redis.RouteCacheTTL)
	assert.Equal(t, DefaultEmailFrom, cfg.Integration.EmailFrom)
}

func TestLoadConfig_ParsesDurations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INVOICES_REDIS.ROUTE_CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Redis.RouteCacheTTL)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INVOICES_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_CheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.CheckEnabled("database"))
	assert.True(t, cfg.CheckEnabled("redis"))
	assert.False(t, cfg.CheckEnabled("smtp"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.CheckEnabled("database"))
}
