package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("API_BASE_URL", "http://localhost:5000/")

	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, AuthModeSpeculative, cfg.AuthMode)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Len(t, cfg.JWTSecret, 32)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("AUTH_MODE", "unified")
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("API_TIMEOUT_SECONDS", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg := Load()

	assert.Equal(t, 8088, cfg.Port)
	assert.Equal(t, AuthModeUnified, cfg.AuthMode)
	assert.Equal(t, SessionBackendPostgres, cfg.SessionBackend)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_UnknownModesFallBack(t *testing.T) {
	t.Setenv("AUTH_MODE", "whatever")
	t.Setenv("SESSION_BACKEND", "redis")

	cfg := Load()

	assert.Equal(t, AuthModeSpeculative, cfg.AuthMode)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
}
