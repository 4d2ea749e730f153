package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// BaseName is the file name, without extension, of enummessage config files.
const BaseName = "enummessage"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, BaseName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, BaseName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", BaseName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// CandidatePaths lists the config files to look for, highest priority first:
// userPath, then the working directory, then the user config directory.
func CandidatePaths(userPath string) []string {
	var paths []string
	if userPath != "" {
		paths = append(paths, userPath)
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}

	for _, dir := range dirs {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			paths = append(paths, filepath.Join(dir, BaseName+ext))
		}
	}
	return paths
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}
