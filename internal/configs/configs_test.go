package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret, "development falls back to an insecure default secret")
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigPortOutOfRange(t *testing.T) {
	t.Setenv("PORT", "80")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "super-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
}
