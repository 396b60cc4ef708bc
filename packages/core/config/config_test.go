package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "30s", cfg.Timeout)
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetCompression())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetParallel())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bcurl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"timeout": "10s",
		"followRedirects": false,
		"headers": {"Authorization": "Bearer token"}
	}`), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "10s", cfg.Timeout)
	assert.False(t, cfg.GetFollowRedirects())
	assert.Equal(t, "Bearer token", cfg.Headers["Authorization"])
	// Unset fields keep their defaults.
	assert.Equal(t, 10, cfg.MaxRedirects)
	assert.True(t, cfg.GetCompression())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bcurl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timeout: 5s
parallel: true
rate: 2.5
userAgent: custom-agent
`), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "5s", cfg.Timeout)
	assert.True(t, cfg.GetParallel())
	assert.Equal(t, 2.5, cfg.Rate)
	assert.Equal(t, "custom-agent", cfg.UserAgent)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "30s", cfg.Timeout)
}

func TestFindAndLoadConfig_PrefersFirstMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bcurl.json"), []byte(`{"timeout": "1s"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bcurl.yaml"), []byte(`timeout: 2s`), 0o644))

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "1s", cfg.Timeout)
}

func TestConfig_Merge(t *testing.T) {
	f := false
	base := DefaultConfig()
	base.Headers = map[string]string{"Accept": "application/json"}

	merged := base.Merge(&Config{
		Timeout:         "3s",
		FollowRedirects: &f,
		Headers:         map[string]string{"Authorization": "Bearer x"},
	})

	assert.Equal(t, "3s", merged.Timeout)
	assert.False(t, merged.GetFollowRedirects())
	assert.Equal(t, "application/json", merged.Headers["Accept"])
	assert.Equal(t, "Bearer x", merged.Headers["Authorization"])
	// Unset booleans in the overlay keep the base value.
	assert.True(t, merged.GetCompression())
	// The base is untouched.
	assert.Equal(t, "30s", base.Timeout)
}

func TestConfig_MergeNil(t *testing.T) {
	base := DefaultConfig()

	assert.Equal(t, base, base.Merge(nil))
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bcurl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}
