// ABOUTME: Filesystem locations for goclaw state under the user's home directory
// ABOUTME: GOCLAW_HOME overrides the base directory, mainly for tests

package config

import (
	"os"
	"path/filepath"
)

// BaseDir returns the goclaw state directory, ~/.goclaw by default.
func BaseDir() string {
	if v := os.Getenv("GOCLAW_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".goclaw")
}

// GlobalConfigPath returns the global config file location.
func GlobalConfigPath() string {
	base := BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "config.yaml")
}

// SessionsDir returns where session files are stored.
func SessionsDir() string {
	base := BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sessions")
}
