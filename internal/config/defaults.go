package config

// DefaultRegistryBaseURL is the HTTP root of the public command
// repository; per-language manifests live at <base>/<lang>/manifest.json.
const DefaultRegistryBaseURL = "https://raw.githubusercontent.com/slashcmd/commands/main"

// DefaultRegistryGitURL is the clone URL used when registry.source is "git".
const DefaultRegistryGitURL = "https://github.com/slashcmd/commands.git"

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]any {
	return map[string]any{
		"language":          "",
		"cache_dir":         "",
		"cache_ttl_hours":   24,
		"install_dir":       "",
		"no_color":          false,
		"registry.source":   "http",
		"registry.base_url": DefaultRegistryBaseURL,
		"registry.git_url":  DefaultRegistryGitURL,
	}
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# slashcmd Configuration
# See 'slashcmd config -h' for commands

# Preferred manifest language (empty = resolve from locale, fallback "en")
language: ""

# Cache settings
cache_dir: ""                         # Override platform cache dir (empty = default)
cache_ttl_hours: 24                   # Manifest freshness window in hours

# Install settings
install_dir: ""                       # Where 'add' places command files (default: .claude/commands)

# Output
no_color: false                       # Disable colored output (NO_COLOR env also honored)

# Remote command repository
registry:
  source: http                        # http | git
  base_url: ` + DefaultRegistryBaseURL + `
  git_url: ` + DefaultRegistryGitURL + `
`
}
