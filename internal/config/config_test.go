package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", cfg.Numbering.Timezone)
	require.NotNil(t, cfg.Numbering.Location)
	assert.Equal(t, 3, cfg.Numbering.MaxRetries)
	assert.False(t, cfg.Documents.RequireAcceptedQuotation)
	assert.Equal(t, 7, cfg.Documents.JobDueDays)
	assert.Equal(t, "300-M", cfg.RateLimit.Rate)
	assert.Equal(t, 30*time.Second, cfg.Renderer.Timeout)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALESDOCS_DB_PORT", "6543")
	t.Setenv("SALESDOCS_DOCUMENTS_REQUIRE_ACCEPTED_QUOTATION", "true")
	t.Setenv("SALESDOCS_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SALESDOCS_REDIS_ADDR", "redis:6379")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.Documents.RequireAcceptedQuotation)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.DB.DSN(), ":6543/")
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("SALESDOCS_NUMBERING_TIMEZONE", "Mars/Olympus")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("SALESDOCS_SERVER_ENVIRONMENT", "production")

	_, err := config.Load()

	assert.Error(t, err)
}
