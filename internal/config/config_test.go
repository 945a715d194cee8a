package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.JWT.Leeway)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Sentry.Enabled)
	assert.False(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("ID_SECRET", "another-secret")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "another-secret", cfg.Security.IDSecret)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("SERVER_ENV", "production")

	_, err := load(viper.New())
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-jwt")
	_, err = load(viper.New())
	assert.Error(t, err)

	t.Setenv("ID_SECRET", "prod-id")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5433/d?sslmode=disable", cfg.DSN())
}
