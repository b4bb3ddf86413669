package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, content string) string {
	t.Helper()

	dir := filepath.Join(root, appDir)
	require.NoError(t, os.MkdirAll(dir, 0o750))

	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadGlobalConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, `{"data_file": "/srv/bookmarks.json"}`)

	cfg, err := Load(map[string]string{"XDG_CONFIG_HOME": root}, "")
	require.NoError(t, err)
	assert.Equal(t, "/srv/bookmarks.json", cfg.DataFile)
}

func TestLoadGlobalConfigMayBeAbsent(t *testing.T) {
	t.Parallel()

	cfg, err := Load(map[string]string{"XDG_CONFIG_HOME": t.TempDir()}, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.DataFile)
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, errConfigNotFound)
}

func TestLoadAcceptsJSONC(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
	// where the bookmarks live
	"data_file": "/srv/bookmarks.json",
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/bookmarks.json", cfg.DataFile)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data_file": 7}`), 0o600))

	_, err := Load(nil, path)
	assert.ErrorIs(t, err, errConfigInvalid)
}

func TestDataFileFromConfig(t *testing.T) {
	t.Parallel()

	got, err := DataFile(Config{DataFile: "/srv/bookmarks.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/bookmarks.json", got)
}

func TestDataFileExpandsHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := DataFile(Config{DataFile: "~/bookmarks.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bookmarks.json"), got)
}

func TestDataFileDefault(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	got, err := DataFile(Config{}, map[string]string{"XDG_CONFIG_HOME": root})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, appDir, DataFileName), got)
}
