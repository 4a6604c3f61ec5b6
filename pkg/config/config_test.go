package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "https://query1.finance.yahoo.com", c.Yahoo.Query1URL)
	assert.Equal(t, 60*time.Second, c.Yahoo.SessionTTL)
	assert.Equal(t, 2, *c.Yahoo.MaxRetries)
	assert.Equal(t, 50, c.Yahoo.BatchSize)
	assert.Equal(t, 300*time.Second, c.Cache.TTL)
	assert.Equal(t, 100, c.Cache.MaxEntries)
	assert.False(t, c.RateLimit.Enabled)
}

func TestParseKeepsExplicitValues(t *testing.T) {
	c, err := Parse([]byte(`
environment: production
server:
  port: 9090
yahoo:
  max_retries: 0
  session_ttl: 2m
cache:
  ttl: 30s
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 0, *c.Yahoo.MaxRetries, "zero retries is a valid setting")
	assert.Equal(t, 2*time.Minute, c.Yahoo.SessionTTL)
	assert.Equal(t, 30*time.Second, c.Cache.TTL)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 70000\n"))
	assert.ErrorContains(t, err, "server.port")

	_, err = Parse([]byte("yahoo:\n  max_retries: -1\n"))
	assert.ErrorContains(t, err, "max_retries")

	_, err = Parse([]byte("environment: [oops"))
	assert.ErrorContains(t, err, "parse config")
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)

	env := map[string]string{
		"APP_ENV":           "staging",
		"SERVER_PORT":       "7070",
		"LOG_LEVEL":         "debug",
		"YAHOO_USER_AGENT":  "quotepull/1.0",
		"YAHOO_MAX_RETRIES": "4",
		"CACHE_TTL":         "45s",
	}
	c.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "staging", c.Environment)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "quotepull/1.0", c.Yahoo.UserAgent)
	assert.Equal(t, 4, *c.Yahoo.MaxRetries)
	assert.Equal(t, 45*time.Second, c.Cache.TTL)
}

func TestLoadWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))
	t.Setenv("SERVER_PORT", "6060")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 6060, c.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
