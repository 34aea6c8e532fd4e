package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starfolk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Cache.SearchTTL)
	require.Equal(t, 60*time.Second, cfg.Cache.ItemTTL)
	require.Equal(t, 300*time.Millisecond, cfg.Input.Debounce)
	require.Equal(t, 2, cfg.Input.MinQueryLength)
	require.False(t, cfg.Cache.DedupeInFlight)
}

func TestLoad_MissingFileAndEmptyPath(t *testing.T) {
	for _, path := range []string{"", "/nonexistent/starfolk.yaml"} {
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig().Timeouts, cfg.Timeouts)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://catalog.internal:9000
cache:
  item_ttl: 2m
  dedupe_in_flight: true
input:
  debounce: 150ms
featured:
  names: [Yoda]
  count: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://catalog.internal:9000", cfg.API.BaseURL)
	require.Equal(t, "/characters", cfg.API.Resource)
	require.Equal(t, 2*time.Minute, cfg.Cache.ItemTTL)
	require.Equal(t, 30*time.Second, cfg.Cache.SearchTTL)
	require.True(t, cfg.Cache.DedupeInFlight)
	require.Equal(t, 150*time.Millisecond, cfg.Input.Debounce)
	require.Equal(t, []string{"Yoda"}, cfg.Featured.Names)
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# nothing here\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  base: http://x\n"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"timeouts.item":          "timeouts:\n  item: 0s\n",
		"cache.search_ttl":       "cache:\n  search_ttl: -1s\n",
		"input.min_query_length": "input:\n  min_query_length: 0\n",
		"api.resource":           "api:\n  resource: characters\n",
		"log.format":             "log:\n  format: xml\n",
	}
	for key, body := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestValidateGatewaySecret(t *testing.T) {
	cfg := DefaultConfig()
	require.ErrorIs(t, cfg.ValidateGatewaySecret(), ErrInvalidConfig)

	cfg.Log.Level = "debug"
	require.NoError(t, cfg.ValidateGatewaySecret())

	cfg = DefaultConfig()
	cfg.Gateway.Secret = "s3cret"
	require.NoError(t, cfg.ValidateGatewaySecret())
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv(EnvAPIBase, "http://env:1234")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSessionSecret, "s3cret")

	path := writeConfig(t, "api:\n  base_url: http://file:1\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://env:1234", cfg.API.BaseURL)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "s3cret", cfg.Gateway.Secret)
}
