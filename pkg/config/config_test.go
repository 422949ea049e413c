package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir string, values map[string]any) string {
	t.Helper()
	data, err := json.MarshalIndent(values, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"api_base_url":            "https://example.test/api",
		"token_file":              filepath.Join(dir, "token"),
		"request_timeout_seconds": 5,
		"styles_file":             filepath.Join(dir, "styles.json"),
	})

	cfg, styles, err := Load(path, "")
	require.NoError(t, err)

	require.Equal(t, "https://example.test/api", cfg.APIBaseURL)
	require.Equal(t, filepath.Join(dir, "token"), cfg.TokenFile)
	require.Equal(t, 5, cfg.RequestTimeout)

	// Styles file did not exist, so defaults were written and returned.
	require.Equal(t, DefaultStyles(), styles)
	_, err = os.Stat(filepath.Join(dir, "styles.json"))
	require.NoError(t, err)
}

func TestMissingConfigFileIsCreatedWithDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.json")

	_, _, err := Load(path, "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var written map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	require.Contains(t, written, "api_base_url")
	require.Contains(t, written, "keymap")
}

func TestEnvOverridesConfiguredURL(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"api_base_url": "https://configured.test/api",
		"token_file":   filepath.Join(dir, "token"),
		"styles_file":  filepath.Join(dir, "styles.json"),
	})

	t.Setenv("TASKDECK_API_URL", "https://env.test/api")

	cfg, _, err := Load(path, "")
	require.NoError(t, err)
	require.Equal(t, "https://env.test/api", cfg.APIBaseURL)
}

func TestFlagOverridesEnvAndConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"api_base_url": "https://configured.test/api",
		"token_file":   filepath.Join(dir, "token"),
		"styles_file":  filepath.Join(dir, "styles.json"),
	})

	t.Setenv("TASKDECK_API_URL", "https://env.test/api")

	cfg, _, err := Load(path, "https://flag.test/api")
	require.NoError(t, err)
	require.Equal(t, "https://flag.test/api", cfg.APIBaseURL)
}

func TestTimeoutFallsBackToDefault(t *testing.T) {
	cfg := Config{RequestTimeout: 0}
	require.Equal(t, "10s", cfg.Timeout().String())

	cfg.RequestTimeout = 30
	require.Equal(t, "30s", cfg.Timeout().String())
}

func TestCustomStylesAreLoaded(t *testing.T) {
	dir := t.TempDir()

	custom := DefaultStyles()
	custom.AccentColor = "99"
	stylesData, err := json.MarshalIndent(custom, "", "  ")
	require.NoError(t, err)
	stylesPath := filepath.Join(dir, "styles.json")
	require.NoError(t, os.WriteFile(stylesPath, stylesData, 0644))

	path := writeConfigFile(t, dir, map[string]any{
		"token_file":  filepath.Join(dir, "token"),
		"styles_file": stylesPath,
	})

	_, styles, err := Load(path, "")
	require.NoError(t, err)
	require.Equal(t, "99", styles.AccentColor)
}
