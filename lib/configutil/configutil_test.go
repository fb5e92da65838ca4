package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Url      string `json:"url"`
	Username string `json:"username"`
	PageSize int    `json:"page_size"`
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "seafadmin.local.json5", LocalPath("seafadmin.json5"))
	require.Equal(t, filepath.Join("a", "b.local.json5"), LocalPath(filepath.Join("a", "b.json5")))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "seafadmin.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(name, []byte(`{
		// comments are fine in json5
		url: "https://files.example.com",
		username: "admin@example.com",
		page_size: 500,
	}`), 0600))

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Url:      "https://files.example.com",
		Username: "admin@example.com",
		PageSize: 500,
	}, cfg)

	require.NoError(t, os.WriteFile(LocalPath(name), []byte(`{username: "root@example.com"}`), 0600))

	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "root@example.com", cfg.Username)
	require.Equal(t, "https://files.example.com", cfg.Url)
	require.Equal(t, 500, cfg.PageSize)
}
