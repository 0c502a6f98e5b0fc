package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir returns the shrc configuration directory, honoring
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "shrc")
	}
	return filepath.Join(UserHomeDir(), ".config", "shrc")
}

// CacheDir returns the shrc cache directory, honoring XDG_CACHE_HOME.
func CacheDir() string {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "shrc")
	}
	return filepath.Join(UserHomeDir(), ".cache", "shrc")
}

// DataDir returns the shrc data directory (session log), honoring
// XDG_DATA_HOME.
func DataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "shrc")
	}
	return filepath.Join(UserHomeDir(), ".local", "share", "shrc")
}
