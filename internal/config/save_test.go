package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSetValue_PreservesComments(t *testing.T) {
	path := writeFile(t, DefaultConfigTemplate())

	require.NoError(t, SetValue(path, "editor.key_timeout", "500ms"))

	got := readFile(t, path)
	require.Contains(t, got, "# vimdoc configuration")
	require.Contains(t, got, "key_timeout: 500ms")
	require.Contains(t, got, "# Wait between the keys")
	require.Contains(t, got, "smart_case: true")

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, cfg.Editor.KeyTimeout)
}

func TestSetValue_AddsMissingSections(t *testing.T) {
	path := writeFile(t, "ui:\n  show_help: false\n")

	require.NoError(t, SetValue(path, "tracing.sample_rate", "0.5"))
	require.NoError(t, SetValue(path, "editor.modes", "[normal, insert]"))
	require.NoError(t, SetValue(path, "Editor.Search.Literal", "true"))

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowHelp)
	require.InDelta(t, 0.5, cfg.Tracing.SampleRate, 1e-9)
	require.Equal(t, []string{"normal", "insert"}, cfg.Editor.Modes)
	require.True(t, cfg.Editor.Search.Literal)
}

func TestSetValue_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "config.yaml")

	require.NoError(t, SetValue(path, "editor.insert_escape", "jk"))
	require.Contains(t, readFile(t, path), "insert_escape: jk")
}

func TestSetValue_Rejects(t *testing.T) {
	path := writeFile(t, DefaultConfigTemplate())

	require.ErrorContains(t, SetValue(path, "editor.colour", "red"), `unknown setting "editor.colour"`)
	require.ErrorContains(t, SetValue(path, "editor.key_timeout", "1ms"), "editor.key_timeout must be between")
	require.ErrorContains(t, SetValue(path, "editor.modes", "[normal, ex]"), "unknown mode")
	require.Equal(t, DefaultConfigTemplate(), readFile(t, path), "file untouched")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Contains(t, keys, "editor.key_timeout")
	require.Contains(t, keys, "editor.search.smart_case")
	require.Contains(t, keys, "tracing.otlp_endpoint")
	require.IsIncreasing(t, keys)
}

func TestRender(t *testing.T) {
	out, err := Render(Defaults())
	require.NoError(t, err)
	require.Contains(t, out, "key_timeout: 1s")
	require.Contains(t, out, "modes: []")
	require.Contains(t, out, "smart_case: true")
}
