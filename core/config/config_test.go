package config

import (
	"testing"

	"calendar-insights/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_DB", "insights")
	t.Setenv("POSTGRES_USER", "insights")
	t.Setenv("POSTGRES_PASSWORD", "secret")
}

func TestLoadMissingVarsListed(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_USER", "insights")
	t.Setenv("POSTGRES_PASSWORD", "")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.True(t, errors.HasCode(err, errors.ErrConfiguration))
	assert.Contains(t, err.Error(), "POSTGRES_DB")
	assert.Contains(t, err.Error(), "POSTGRES_PASSWORD")
	assert.NotContains(t, err.Error(), "POSTGRES_HOST,")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "primary", cfg.Google.CalendarID)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("GOOGLE_CALENDAR_ID", "team@company.com")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, "team@company.com", cfg.Google.CalendarID)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
