package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "parfums")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
}

type fakeSecrets map[string]map[string]string

func (f fakeSecrets) GetSecretMap(_ context.Context, name string) (map[string]string, error) {
	if m, ok := f[name]; ok {
		return m, nil
	}
	return nil, errors.New("secret not found")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", " https://shop.dz , https://admin.shop.dz ")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "parfum_images", cfg.ImageBucket)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://shop.dz", "https://admin.shop.dz"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.Postgres.DSN(), "host=db")
}

func TestLoadConfig_EmptyOriginsFallBack(t *testing.T) {
	setBaseEnv(t)
	for _, raw := range []string{"", ",", " , ,"} {
		t.Setenv("ALLOWED_ORIGINS", raw)
		cfg, err := loadConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins, "ALLOWED_ORIGINS=%q", raw)
	}
}

func TestLoadConfig_Required(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("POSTGRES_HOST", "")
	_, err := loadConfig(nil)
	require.Error(t, err)
	assert.Equal(t, "database config incomplete", err.Error())

	t.Setenv("DATABASE_URL", "postgres://shop:pw@db:5432/parfums")
	_, err = loadConfig(nil)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "")
	_, err = loadConfig(nil)
	require.Error(t, err)
}

func TestLoadConfig_SecretsOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := loadConfig(fakeSecrets{
		dbSecretName:    {"POSTGRES_HOST": "rds.internal", "POSTGRES_PASSWORD": "rotated"},
		adminSecretName: {"ADMIN_EMAIL": "admin@parfum.dz", "JWT_SECRET": "from-secrets"},
	})
	require.NoError(t, err)
	assert.Equal(t, "rds.internal", cfg.Postgres.Host)
	assert.Equal(t, "rotated", cfg.Postgres.Password)
	assert.Equal(t, "shop", cfg.Postgres.User)
	assert.Equal(t, "admin@parfum.dz", cfg.AdminEmail)
	assert.Equal(t, "from-secrets", cfg.JWTSecret)
}
