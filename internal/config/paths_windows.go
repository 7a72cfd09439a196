//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	local := os.Getenv("LOCALAPPDATA")
	programData := os.Getenv("ProgramData")
	return []string{
		"config.yaml",
		filepath.Join(local, "FactoryMonitor", "config.yaml"),
		filepath.Join(programData, "FactoryMonitor", "config.yaml"),
	}
}
