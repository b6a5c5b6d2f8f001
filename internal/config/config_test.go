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
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BOOKMARKS_DB", "")

	cfg, err := Load("")
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".local/share/bookmarked/bookmarks.db"), cfg.DBPath)
	assert.Equal(t, DefaultUndoLimit, cfg.UndoLimit)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /tmp/from-file.db\nundo_limit: 5\nfetch_timeout: 3s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.UndoLimit)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)

	t.Setenv("BOOKMARKS_DB", "/tmp/from-env.db")
	t.Setenv("BOOKMARKS_UNDO_LIMIT", "7")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.UndoLimit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch_timeout: 0s\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/x/y.db", want: filepath.Join(home, "x/y.db")},
		{in: "/abs/path", want: "/abs/path"},
		{in: "~user/x", want: "~user/x"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
