package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML reads yaml through viper with defaults applied.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, "http://localhost:3001", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, 10, cfg.History.PageSize)
	require.True(t, cfg.History.PersistRecall)
	require.NoError(t, cfg.Validate())
}

func TestPartialYAMLKeepsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
api:
  base_url: http://inspect.example:8080
  timeout: 3s
history:
  page_size: 50
`)
	require.Equal(t, "http://inspect.example:8080", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, 50, cfg.History.PageSize)
	require.Equal(t, 50, cfg.History.RecallSize)
	require.True(t, cfg.UI.ShowStatusBar)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  page_size: 20\n"), 0o644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, 20, cfg.History.PageSize)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://from-file:1\n"), 0o644))
	t.Setenv("RICEINSPECT_API_BASE_URL", "http://from-env:2")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://from-env:2", cfg.API.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  page_size: 0\n"), 0o644))
	_, _, err := Load(path)
	require.ErrorContains(t, err, "history.page_size")

	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: not-a-url\n"), 0o644))
	_, _, err = Load(path)
	require.ErrorContains(t, err, "api.base_url")
}

func TestWriteDefaultConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".riceinspect", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestRecallPath(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".riceinspect", "config.yaml")
	require.Equal(t, filepath.Join(dir, ".riceinspect", "history.json"), RecallPath(local))
	require.Equal(t, filepath.Join(dir, ".riceinspect", "riceinspect.log"), LogPath(local))

	other := filepath.Join(dir, "elsewhere.yaml")
	require.Equal(t, "history.json", filepath.Base(RecallPath(other)))
	require.NotEqual(t, dir, filepath.Dir(RecallPath(other)))
}
