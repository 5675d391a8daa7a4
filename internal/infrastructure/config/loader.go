package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wareops/opsctl/assets"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/pkg/filesystem"
)

// FileLoader loads YAML configuration from ~/.opsctl/config.yaml
// (overridable via OPSCTL_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing config file is seeded from
// the embedded default; a present one is backfilled field by field so sparse
// configs keep working across upgrades.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("OPSCTL_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000/api/v1"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 60
	}
	if cfg.API.MetadataTimeoutSeconds == 0 {
		cfg.API.MetadataTimeoutSeconds = 2
	}
	if cfg.API.AuthTimeoutSeconds == 0 {
		cfg.API.AuthTimeoutSeconds = 30
	}
	if cfg.API.ForecastTimeoutSeconds == 0 {
		cfg.API.ForecastTimeoutSeconds = 10
	}
	if cfg.API.ExecuteTimeoutSeconds == 0 {
		cfg.API.ExecuteTimeoutSeconds = 60
	}
	// Execution calls may legitimately run long, but cap runaway configs.
	if cfg.API.ExecuteTimeoutSeconds > 300 {
		cfg.API.ExecuteTimeoutSeconds = 300
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "file"
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = 50
	}
	if cfg.Monitor.PollIntervalSeconds == 0 {
		cfg.Monitor.PollIntervalSeconds = 2
	}
	if cfg.Preferences.DocumentType == "" {
		cfg.Preferences.DocumentType = "auto"
	}
	if cfg.Preferences.DefaultSessionID == "" {
		cfg.Preferences.DefaultSessionID = "opsctl-session"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
