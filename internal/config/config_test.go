package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BASE_URL", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("DISPATCH_CONCURRENCY", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "log", cfg.EmailProvider)
	assert.Equal(t, 1, cfg.DispatchConcurrency)
	assert.Equal(t, "data", cfg.WhatsAppDataDir)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "https://bodas.example.com/")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("COMMERCIAL_NAME", "Bodas Felices")
	t.Setenv("DISPATCH_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://bodas.example.com", cfg.BaseURL)
	assert.Equal(t, "sendgrid", cfg.EmailProvider)
	assert.Equal(t, "Bodas Felices", cfg.CommercialName)
	assert.Equal(t, 8, cfg.DispatchConcurrency)
}
