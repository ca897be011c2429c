package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PIPEDRIVE_API_TOKEN", "PIPEDRIVE_DOMAIN", "PIPEDRIVE_BASE_URL",
		"PIPEDRIVE_TIMEOUT", "LOG_DIR", "DB_PATH", "HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "nettbureaucase", cfg.Domain)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "./leads.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even if empty.
	for _, key := range []string{"PIPEDRIVE_API_TOKEN", "PIPEDRIVE_DOMAIN", "PIPEDRIVE_TIMEOUT"} {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		os.Unsetenv("PIPEDRIVE_API_TOKEN")
		os.Unsetenv("PIPEDRIVE_DOMAIN")
		os.Unsetenv("PIPEDRIVE_TIMEOUT")
	})

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PIPEDRIVE_API_TOKEN=secret\nPIPEDRIVE_DOMAIN=acme\nPIPEDRIVE_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.ApiToken)
	assert.Equal(t, "acme", cfg.Domain)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingEnvFileIsNotFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIPEDRIVE_API_TOKEN", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ApiToken)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIPEDRIVE_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
