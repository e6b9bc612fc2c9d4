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
	t.Chdir(t.TempDir())
	t.Setenv("STRATEGY_CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("META_ADS_ACCESS_TOKEN", "")
	t.Setenv("ADS_TERM_DELAY_MS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "US", cfg.Ads.Country)
	assert.Equal(t, 5, cfg.Ads.MaxTerms)
	assert.Equal(t, 1500*time.Millisecond, cfg.Ads.TermDelay())
	assert.Empty(t, cfg.Ads.AccessToken)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
gemini:
  model: gemini-2.5-pro
  timeout_seconds: 30
ads:
  country: GB
  term_delay_ms: 200
`), 0644))

	t.Setenv("STRATEGY_CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ADS_COUNTRY", "")
	t.Setenv("ADS_TERM_DELAY_MS", "50")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout())
	assert.Equal(t, "GB", cfg.Ads.Country)
	assert.Equal(t, 50*time.Millisecond, cfg.Ads.TermDelay())
	assert.Equal(t, 15, cfg.Ads.PerTermLimit)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADS_MAX_TERMS=3\n"), 0644))
	t.Setenv("STRATEGY_CONFIG_FILE", "")
	t.Setenv("ADS_MAX_TERMS", "")
	os.Unsetenv("ADS_MAX_TERMS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Ads.MaxTerms)
}

func TestLoad_BadFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STRATEGY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
