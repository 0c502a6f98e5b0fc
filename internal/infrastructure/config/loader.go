package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/shrc/assets"
	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/ports"
)

// FileLoader loads YAML configuration from ~/.config/shrc/config.yaml
// (overridable via SHRC_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := writeDefault(path); err != nil {
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

	return expandPlugins(cfg), nil
}

// Path returns the config file path the loader resolves to.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Reset rewrites the config file with the embedded defaults.
func (l *FileLoader) Reset() error {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeDefault(path)
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("SHRC_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.FilePermissions)
}

// expandPlugins resolves ~ in plugin paths so downstream consumers only see
// absolute paths.
func expandPlugins(cfg domain.Config) domain.Config {
	for i, p := range cfg.Plugins {
		cfg.Plugins[i].Path = expandPath(p.Path)
	}
	if cfg.Completion.CacheDir != "" {
		cfg.Completion.CacheDir = expandPath(cfg.Completion.CacheDir)
	}
	if cfg.History.File != "" {
		cfg.History.File = expandPath(cfg.History.File)
	}
	return cfg
}

func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
