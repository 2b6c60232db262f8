package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "bivett", cfg.Dashboard.Alliance)
	assert.Equal(t, 10, cfg.Dashboard.TopCities)
	assert.Equal(t, "skip", cfg.Dashboard.IsolationPolicy)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Len(t, cfg.Theme.ChartColors, 6)
	assert.Equal(t, "#3366CC", cfg.Theme.ChartColors[0])

	loc, err := cfg.Dashboard.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("DASHBOARD_ISOLATION_POLICY", "ABORT")
	t.Setenv("DASHBOARD_CACHE_TTL", "30s")
	t.Setenv("THEME_CHART_COLORS", "#111111,#222222")
	t.Setenv("DATABASE_URL", "db:5432/policies")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "abort", cfg.Dashboard.IsolationPolicy)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
	assert.Equal(t, []string{"#111111", "#222222"}, cfg.Theme.ChartColors)
	assert.Contains(t, cfg.Database.DSN, "@db:5432/policies?sslmode=")
}

func TestNewConfig_InvalidIsolationPolicy(t *testing.T) {
	viper.Reset()
	t.Setenv("DASHBOARD_ISOLATION_POLICY", "sometimes")

	_, err := NewConfig()
	assert.Error(t, err)
}
