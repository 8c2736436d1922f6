package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TEAMTASKS_API_URL", "")
	t.Setenv("TEAMTASKS_HTTP_TIMEOUT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint32(3), cfg.BreakerFailures)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEAMTASKS_API_URL", "http://localhost:3000/api/")
	t.Setenv("TEAMTASKS_HTTP_TIMEOUT", "2s")
	t.Setenv("TEAMTASKS_LOG_LEVEL", "DEBUG")
	t.Setenv("TEAMTASKS_BREAKER_FAILURES", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.BaseURL())
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint32(7), cfg.BreakerFailures)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEAMTASKS_COMPOSER_ADDR=:9100\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("TEAMTASKS_COMPOSER_ADDR") })

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.ComposerAddr)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("TEAMTASKS_HTTP_TIMEOUT", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "TEAMTASKS_HTTP_TIMEOUT")
	})

	t.Run("bad scheme", func(t *testing.T) {
		t.Setenv("TEAMTASKS_API_URL", "ftp://example.com")
		_, err := Load("")
		assert.ErrorContains(t, err, "http:// or https://")
	})
}
