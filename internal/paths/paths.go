// Package paths resolves the configuration directory and the directory
// chunk files are written to.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform config root.
const appDirName = "tabulate"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "TABULATE_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/tabulate (fallback ~/.config/tabulate)
// macOS:   ~/Library/Application Support/tabulate
// Windows: %APPDATA%/tabulate
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > TABULATE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveOutputDir returns the directory chunk files are written to: the
// configured directory when set, otherwise the directory holding the input
// document.
func ResolveOutputDir(configured, inputPath string) (string, error) {
	if configured != "" {
		return filepath.Abs(configured)
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}
