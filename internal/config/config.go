package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bvoo/arcadewiki/internal/logging"
	"gopkg.in/yaml.v3"
)

// Environment keys that override the config file.
const (
	EnvContentDir  = "ARCADEWIKI_CONTENT_DIR"
	EnvSnapshotDir = "ARCADEWIKI_SNAPSHOT_DIR"
	EnvLogLevel    = "ARCADEWIKI_LOG_LEVEL"
)

// Config is the in-memory representation of ~/.arcadewiki/config.yaml.
type Config struct {
	ContentDir   string         `yaml:"content_dir"`
	SnapshotDir  string         `yaml:"snapshot_dir"`
	SimilarLimit int            `yaml:"similar_limit,omitempty"`
	Logging      logging.Config `yaml:"logging"`
}

// AppDir returns the absolute path to ~/.arcadewiki/.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".arcadewiki"), nil
}

// ConfigPath returns the absolute path to ~/.arcadewiki/config.yaml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := AppDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		ContentDir:   "content",
		SnapshotDir:  filepath.Join(dir, "snapshot"),
		SimilarLimit: 3,
		Logging:      logging.DefaultConfig(),
	}, nil
}

// Load reads the config at path (or ConfigPath when path is empty) on top of
// the defaults, then applies environment overrides. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.ContentDir, err = ExpandPath(cfg.ContentDir); err != nil {
		return nil, err
	}
	if cfg.SnapshotDir, err = ExpandPath(cfg.SnapshotDir); err != nil {
		return nil, err
	}
	if cfg.Logging.FilePath, err = ExpandPath(cfg.Logging.FilePath); err != nil {
		return nil, err
	}
	if cfg.SimilarLimit <= 0 {
		cfg.SimilarLimit = 3
	}
	if !logging.ValidLevel(cfg.Logging.Level) {
		return nil, fmt.Errorf("invalid log level %q in %s", cfg.Logging.Level, path)
	}
	if !logging.ValidFormat(cfg.Logging.Format) {
		return nil, fmt.Errorf("invalid log format %q in %s", cfg.Logging.Format, path)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	for _, o := range []struct {
		key string
		dst *string
	}{
		{EnvContentDir, &cfg.ContentDir},
		{EnvSnapshotDir, &cfg.SnapshotDir},
		{EnvLogLevel, &cfg.Logging.Level},
	} {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return err
		}
		if v != "" {
			*o.dst = v
		}
	}
	return nil
}

// Save marshals cfg and writes it to path (or ConfigPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
