package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env ni config.env
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Auth.APIURL)
	assert.True(t, cfg.Auth.StubEnabled)
	assert.Equal(t, "/calculator", cfg.Session.LandingPath)
	assert.Equal(t, time.Second, cfg.Session.RedirectDelay)
	assert.Equal(t, "ko-KR", cfg.Display.Locale)
	assert.NotEmpty(t, cfg.JWT.Secret, "en development se usa un secret de desarrollo")
	assert.NotEmpty(t, cfg.CLI.TokenFile)
	assert.False(t, cfg.Auth.VerifyTokens, "por defecto solo se comprueba presencia")
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_API_URL", "https://auth.example.com")
	t.Setenv("AUTH_STUB_ENABLED", "false")
	t.Setenv("LOGIN_REDIRECT_DELAY_MS", "250")
	t.Setenv("APP_LOCALE", "es-CO")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://auth.example.com", cfg.Auth.APIURL)
	assert.False(t, cfg.Auth.StubEnabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.RedirectDelay)
	assert.Equal(t, "es-CO", cfg.Display.Locale)
}

func TestLoad_ProductionExigeSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_STUB_ENABLED", "true")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_VerificacionExigeSecretEnProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_STUB_ENABLED", "false")
	t.Setenv("AUTH_VERIFY_TOKENS", "true")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cr3t")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.VerifyTokens)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}
