package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetDefaultDBPathOnly returns a system-appropriate default path for the history database
func GetDefaultDBPathOnly() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "epoch.db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "epoch", "epoch.db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "epoch", "epoch.db")
	default: // Linux and other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "epoch", "epoch.db")
	}
}

// ResolveAndEnsureDBPath expands providedPath (or the default when empty) to an
// absolute path and creates its parent directory.
func ResolveAndEnsureDBPath(providedPath string) (string, error) {
	targetPath := providedPath
	if targetPath == "" {
		targetPath = GetDefaultDBPathOnly()
	}
	if targetPath == ":memory:" {
		return targetPath, nil
	}

	if strings.HasPrefix(targetPath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", targetPath, err)
		}
		targetPath = filepath.Join(homeDir, targetPath[2:])
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", targetPath, err)
	}
	targetPath = absPath

	dbDir := filepath.Dir(targetPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory '%s' for database: %w", dbDir, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory '%s' for database: %w", dbDir, err)
	}

	return targetPath, nil
}
