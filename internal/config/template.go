package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteTemplate writes the commented default config file for a scope.
// Refuses to overwrite an existing file.
func WriteTemplate(scope Scope) (string, error) {
	path, err := ConfigPath(scope)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists; edit it or remove it first", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// AsMap returns the configuration keyed the way the config files spell
// it, for display. Unknown keys from Extra are included.
func (c *Configuration) AsMap() map[string]any {
	m := map[string]any{
		"language":        c.Language,
		"cache_dir":       c.CacheDir,
		"cache_ttl_hours": c.CacheTTLHours,
		"install_dir":     c.InstallDir,
		"no_color":        c.NoColor,
		"registry": map[string]any{
			"source":   c.Registry.Source,
			"base_url": c.Registry.BaseURL,
			"git_url":  c.Registry.GitURL,
		},
	}
	for key, value := range c.Extra {
		m[key] = value
	}
	return m
}
