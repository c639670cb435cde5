package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_PORT", "APP_PORT", "AUDIT_WORKERS", "AUDIT_RETENTION", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 8, cfg.Audit.Workers)
	assert.Zero(t, cfg.Audit.Retention)
	assert.Equal(t, time.Hour, cfg.Audit.PurgeInterval)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("AUDIT_WORKERS", "3")
	t.Setenv("AUDIT_RETENTION", "720h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Audit.Workers)
	assert.Equal(t, 720*time.Hour, cfg.Audit.Retention)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Contains(t, cfg.DatabaseURL(), ":secret@")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUDIT_WORKERS=5\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("AUDIT_WORKERS", "")
	os.Unsetenv("AUDIT_WORKERS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Audit.Workers)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]string{
		"DB_PORT":         "abc",
		"AUDIT_WORKERS":   "many",
		"AUDIT_RETENTION": "30 days",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Password: "secret", MaxConns: 10, MinConns: 2},
			JWT:      JWTConfig{Secret: "jwt", AccessExpiration: "1h", RefreshExpiration: "24h"},
			Audit:    AuditConfig{Workers: 4, PurgeInterval: time.Hour},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }},
		{"bad access expiration", func(c *Config) { c.JWT.AccessExpiration = "forever" }},
		{"no workers", func(c *Config) { c.Audit.Workers = 0 }},
		{"negative retention", func(c *Config) { c.Audit.Retention = -time.Hour }},
		{"retention without interval", func(c *Config) { c.Audit.Retention = time.Hour; c.Audit.PurgeInterval = 0 }},
		{"min above max conns", func(c *Config) { c.Database.MinConns = 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
