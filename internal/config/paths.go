package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns <user config dir>/hrsql/config.yaml.
//
// Note: this function does not create directories or files.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "hrsql", "config.yaml"), nil
}

// DefaultHistoryPath returns <user cache dir>/hrsql/history.db.
//
// Note: this function does not create directories.
func DefaultHistoryPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "hrsql", "history.db"), nil
}

// ResolvePath returns the config path from HRSQL_CONFIG_PATH, falling back to
// DefaultConfigPath.
func ResolvePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	return DefaultConfigPath()
}
