//go:build linux || darwin

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"config.yaml",
		filepath.Join(home, ".factory-monitor", "config.yaml"),
		"/etc/factory-monitor/config.yaml",
	}
}
