package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"hrsql/internal/validation"
)

const (
	EnvBaseURL    = "HRSQL_BASE_URL"
	EnvConfigPath = "HRSQL_CONFIG_PATH"
	EnvLogLevel   = "HRSQL_LOG_LEVEL"
)

// Config is the user-level configuration stored as YAML.
type Config struct {
	// Count is how many challenges a draw picks.
	Count int `yaml:"count" validate:"min=1"`

	// Preset is the default selection: all, none or easy.
	Preset string `yaml:"preset" validate:"oneof=all none easy"`

	// Limit is the page size requested from HackerRank.
	Limit int `yaml:"limit" validate:"min=1"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// History turns session recording on or off.
	History bool `yaml:"history"`

	// HistoryPath is the SQLite file for session history. Empty means
	// DefaultHistoryPath().
	HistoryPath string `yaml:"history_path,omitempty"`

	// Browser is the command used by --open. Empty means the OS default.
	Browser string `yaml:"browser,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Count:    3,
		Preset:   "all",
		Limit:    100,
		LogLevel: "warn",
		History:  true,
	}
}

func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Store loads and saves config.
type Store interface {
	Load(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) error
}

// FileStore is a filesystem-backed config store (e.g. ~/.config/hrsql/config.yaml).
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file on top of Default(), so keys missing from the file keep
// their defaults. A missing file yields an error wrapping os.ErrNotExist.
func (s *FileStore) Load(ctx context.Context) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", s.Path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", s.Path, err)
	}
	return cfg, nil
}

// Save writes cfg atomically with mode 0600.
func (s *FileStore) Save(ctx context.Context, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("replace config %s: %w", s.Path, err)
	}
	return nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(ctx context.Context, store Store) (Config, error) {
	cfg, err := store.Load(ctx)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.LogLevel = strings.ToLower(lvl)
	}
}
