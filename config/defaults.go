package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ekisa-team/visionkit/internal/envvar"
)

// DefaultConfigPath returns the default path for the visionkit config
// directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "visionkit", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "visionkit")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "visionkit")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "visionkit")
		}
		return filepath.Join(home, ".config", "visionkit")
	}
}

// DefaultModelsPath returns the default path for the visionkit models
// directory, honoring the VISIONKIT_MODELS_PATH override.
func DefaultModelsPath() string {
	if override := os.Getenv(envvar.VisionkitModelsPath); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "visionkit", "models")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "visionkit", "models")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "visionkit", "models")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "visionkit", "models")
		}
		return filepath.Join(home, ".cache", "visionkit", "models")
	}
}
