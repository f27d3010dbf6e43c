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
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "api_url: https://api.example.com\nrequest_timeout: 10s\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile),
		[]byte("api_url: https://file.example.com\n"), 0o600))

	t.Setenv("ADCTL_API_URL", "https://env.example.com")
	t.Setenv("ADCTL_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile),
		[]byte("api_url: [unclosed\n"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Config{
		APIURL:         "https://api.example.com",
		RequestTimeout: 5 * time.Second,
		LogLevel:       "debug",
		LogFormat:      "json",
	}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
