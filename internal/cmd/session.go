package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/logging"
	"github.com/meetulr/talawa-admin/internal/store"
)

// CachePath returns the local key/value cache location.
func CachePath() string {
	return filepath.Join(config.Home(), "local.sqlite")
}

// LogPath returns the log file location.
func LogPath() string {
	return filepath.Join(config.Home(), "talawa.log")
}

// NewClient builds the API client for cfg. An empty api_url targets the
// default local server.
func NewClient(cfg *config.Config) *api.Client {
	if cfg == nil || cfg.APIURL == "" {
		apiKey := ""
		if cfg != nil {
			apiKey = cfg.APIKey
		}
		return api.NewDefaultClient(apiKey)
	}
	return api.NewClient(cfg.APIURL, cfg.APIKey)
}

// OpenCache opens the local cache, creating its directory when missing.
func OpenCache() (*store.Store, error) {
	path := CachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return store.Open(path)
}

func loadClient() (*config.Config, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in: %w", err)
	}
	client := NewClient(cfg)
	client.SetLogger(logging.Nop())
	return cfg, client, nil
}
