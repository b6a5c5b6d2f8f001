package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultDBPath       = "~/.local/share/bookmarked/bookmarks.db"
	DefaultUndoLimit    = 100
	DefaultFetchTimeout = 10 * time.Second
)

// Config holds the settings shared by all binaries
type Config struct {
	DBPath       string
	UndoLimit    int
	FetchTimeout time.Duration
	LogFile      string
}

// Load reads settings from cfgFile, or from ~/.config/bookmarked/config.yaml when
// cfgFile is empty, then from BOOKMARKS_* environment variables, which win.
// A missing default config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bookmarked"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", DefaultDBPath)
	v.SetDefault("undo_limit", DefaultUndoLimit)
	v.SetDefault("fetch_timeout", DefaultFetchTimeout)
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DBPath:       ExpandHome(v.GetString("db")),
		UndoLimit:    v.GetInt("undo_limit"),
		FetchTimeout: v.GetDuration("fetch_timeout"),
		LogFile:      ExpandHome(v.GetString("log_file")),
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch_timeout must be positive, got %s", cfg.FetchTimeout)
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
