// Package config provides hierarchical configuration management for
// slashcmd using koanf. Values are loaded with priority: environment
// variables > project config (.slashcmd/config.yml) > user config
// (~/.config/slashcmd/config.yml) > defaults. Legacy JSON configs
// (~/.slashcmd/config.json) still load, with a migration warning.
//
// A missing or malformed config source degrades to an empty source at
// that precedence tier and loading continues down the chain; it never
// aborts resolution.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Scope identifies a configuration storage tier.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeProject Scope = "project"
)

// RegistryConfig selects and addresses the remote command repository.
type RegistryConfig struct {
	// Source is the fetch transport: "http" (raw manifest URLs) or
	// "git" (shallow clone of the commands repository).
	Source string `koanf:"source" validate:"omitempty,oneof=http git"`
	// BaseURL is the HTTP base under which <lang>/manifest.json lives.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
	// GitURL is the clone URL used when Source is "git".
	GitURL string `koanf:"git_url"`
}

// Configuration represents the slashcmd CLI tool configuration.
// Keys not modeled here are carried verbatim in Extra so a newer config
// file round-trips through an older binary.
type Configuration struct {
	// Language is the preferred manifest language code (e.g. "en", "fr").
	// Can be set via SLASHCMD_LANGUAGE.
	Language string `koanf:"language"`

	// CacheDir overrides the platform cache directory.
	CacheDir string `koanf:"cache_dir"`

	// CacheTTLHours is the manifest snapshot freshness window.
	CacheTTLHours int `koanf:"cache_ttl_hours" validate:"min=0,max=8760"`

	// InstallDir overrides where `add` places command files
	// (default: .claude/commands).
	InstallDir string `koanf:"install_dir"`

	// Registry configures the remote command repository.
	Registry RegistryConfig `koanf:"registry"`

	// NoColor disables colored output. NO_COLOR is also honored.
	NoColor bool `koanf:"no_color"`

	// Extra carries unknown keys for forward compatibility.
	Extra map[string]any `koanf:",remain"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .slashcmd/config.yml)
	ProjectConfigPath string
	// WarningWriter receives degradation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load() (*Configuration, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)
	loadScopeInto(k, ScopeUser, "", warningWriter, opts.SkipWarnings)
	loadScopeInto(k, ScopeProject, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)

	if err := k.Load(env.Provider("SLASHCMD_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	return finalizeConfig(k)
}

// LoadScope loads a single configuration tier with no defaults or
// environment applied. A missing or malformed file yields an empty
// configuration, never an error; the language resolver walks tiers
// itself and needs each one in isolation.
func LoadScope(scope Scope) *Configuration {
	return LoadScopeFrom(scope, "")
}

// LoadScopeFrom is LoadScope with an explicit file path override.
func LoadScopeFrom(scope Scope, path string) *Configuration {
	k := koanf.New(".")
	loadScopeInto(k, scope, path, io.Discard, true)
	cfg, err := unmarshalConfig(k)
	if err != nil {
		return &Configuration{}
	}
	return cfg
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadScopeInto layers one tier's file onto k. YAML is preferred; legacy
// JSON loads with a migration warning. Unreadable or malformed files are
// skipped with a warning so the tier degrades to empty.
func loadScopeInto(k *koanf.Koanf, scope Scope, customPath string, warningWriter io.Writer, skipWarnings bool) {
	yamlPath := customPath
	if yamlPath == "" {
		yamlPath, _ = ConfigPath(scope)
	}
	legacyPath, _ := LegacyConfigPath(scope)

	if fileExists(yamlPath) {
		if err := loadYAMLConfig(k, yamlPath, scope); err != nil {
			if !skipWarnings {
				fmt.Fprintf(warningWriter, "Warning: skipping %s config: %v\n", scope, err)
			}
		}
		return
	}
	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			if !skipWarnings {
				fmt.Fprintf(warningWriter, "Warning: skipping legacy %s config: %v\n", scope, err)
			}
			return
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move it to %s in YAML format.\n\n", yamlPath)
		}
	}
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string, scope Scope) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", scope, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", scope, path, err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	cfg, err := unmarshalConfig(k)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfigValues(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.CacheDir = expandHomePath(cfg.CacheDir)
	cfg.InstallDir = expandHomePath(cfg.InstallDir)

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return cfg, nil
}

func unmarshalConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Merge shallow-merges project values over user values, project winning
// per key. Unknown keys merge the same way through Extra.
func Merge(user, project *Configuration) *Configuration {
	if user == nil {
		user = &Configuration{}
	}
	if project == nil {
		project = &Configuration{}
	}

	merged := *user
	if project.Language != "" {
		merged.Language = project.Language
	}
	if project.CacheDir != "" {
		merged.CacheDir = project.CacheDir
	}
	if project.CacheTTLHours != 0 {
		merged.CacheTTLHours = project.CacheTTLHours
	}
	if project.InstallDir != "" {
		merged.InstallDir = project.InstallDir
	}
	if project.Registry.Source != "" {
		merged.Registry.Source = project.Registry.Source
	}
	if project.Registry.BaseURL != "" {
		merged.Registry.BaseURL = project.Registry.BaseURL
	}
	if project.Registry.GitURL != "" {
		merged.Registry.GitURL = project.Registry.GitURL
	}
	if project.NoColor {
		merged.NoColor = true
	}

	if len(user.Extra) > 0 || len(project.Extra) > 0 {
		merged.Extra = make(map[string]any, len(user.Extra)+len(project.Extra))
		for key, value := range user.Extra {
			merged.Extra[key] = value
		}
		for key, value := range project.Extra {
			merged.Extra[key] = value
		}
	}

	return &merged
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: SLASHCMD_CACHE_TTL_HOURS -> cache_ttl_hours, and one level
// of nesting via double underscore: SLASHCMD_REGISTRY__SOURCE -> registry.source
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "SLASHCMD_"))
	return strings.ReplaceAll(key, "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
