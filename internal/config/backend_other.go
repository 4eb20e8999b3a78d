//go:build !darwin

package config

import (
	"os"
	"path/filepath"
)

func newPlatformBackend() ConfigBackend {
	return newFileBackend(configFilePath())
}

// configFilePath returns $XDG_CONFIG_HOME/biomatch/config.json, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func configFilePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "biomatch", "config.json")
}
