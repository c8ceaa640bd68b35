package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPath returns the config file path for a scope.
// User scope follows the XDG Base Directory Specification:
//   - Linux: ~/.config/slashcmd/config.yml
//   - macOS: ~/Library/Application Support/slashcmd/config.yml
//   - Windows: %APPDATA%\slashcmd\config.yml
//
// Project scope is always .slashcmd/config.yml relative to the current
// directory.
func ConfigPath(scope Scope) (string, error) {
	switch scope {
	case ScopeUser:
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(configDir, "slashcmd", "config.yml"), nil
	case ScopeProject:
		return filepath.Join(".slashcmd", "config.yml"), nil
	default:
		return "", fmt.Errorf("unknown config scope %q", scope)
	}
}

// ConfigDir returns the config directory for a scope.
func ConfigDir(scope Scope) (string, error) {
	path, err := ConfigPath(scope)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// LegacyConfigPath returns the deprecated JSON config location for a
// scope: ~/.slashcmd/config.json for user, .slashcmd/config.json for
// project.
func LegacyConfigPath(scope Scope) (string, error) {
	switch scope {
	case ScopeUser:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".slashcmd", "config.json"), nil
	case ScopeProject:
		return filepath.Join(".slashcmd", "config.json"), nil
	default:
		return "", fmt.Errorf("unknown config scope %q", scope)
	}
}
