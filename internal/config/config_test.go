package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8007, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sellers", cfg.PostgresDB)
	assert.Equal(t, 60, cfg.SettingsTTLSecs)
	assert.Equal(t, "In House", cfg.InHouseShopName)
	assert.Empty(t, cfg.UserServiceURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("SELLER_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seller config")
	assert.Contains(t, err.Error(), "HTTPPort")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "2.0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTELSampleRate")
}

func TestLoad_InvalidPoolMaxConns(t *testing.T) {
	t.Setenv("POSTGRES_POOL_MAX_CONNS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_CustomUserServiceURL(t *testing.T) {
	t.Setenv("USER_SERVICE_URL", "http://user-service:8001")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://user-service:8001", cfg.UserServiceURL)
}

func TestPostgres_MapsPoolSettings(t *testing.T) {
	t.Setenv("POSTGRES_POOL_MAX_CONN_LIFETIME_MINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "localhost", pg.Host)
	assert.Equal(t, 5432, pg.Port)
	assert.Equal(t, 30*time.Minute, pg.MaxConnLifetime)
}

func TestRedis_MapsConnection(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.prod")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	rc := cfg.Redis()
	assert.Equal(t, "redis.prod", rc.Host)
	assert.Equal(t, 6380, rc.Port)
}
