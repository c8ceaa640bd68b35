// Package language resolves the effective manifest language and merges
// per-scope configuration.
//
// Resolution is a strict precedence chain, first match wins:
// per-invocation flag > SLASHCMD_LANGUAGE > project config > user
// config > host locale > the "en" fallback. A malformed config tier
// degrades to absent and the chain continues; resolution never fails.
package language

import (
	"os"
	"sort"
	"strings"

	"github.com/slashcmd/slashcmd/internal/config"
)

// Fallback is the hard default when no other source yields a language.
const Fallback = "en"

// supported maps repository language codes to their English names.
var supported = map[string]string{
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"tr": "Turkish",
	"zh": "Chinese",
}

// IsSupported reports whether code is a repository language.
func IsSupported(code string) bool {
	_, ok := supported[code]
	return ok
}

// Name returns the English name for a supported language code.
func Name(code string) string {
	return supported[code]
}

// Codes returns all supported language codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Resolver resolves the effective language and configuration from the
// per-scope config tiers. Scope loading and environment lookup are
// injected so tests control every tier.
type Resolver struct {
	loadScope func(config.Scope) *config.Configuration
	lookupEnv func(string) (string, bool)
}

// NewResolver creates a resolver backed by the real config files and
// process environment.
func NewResolver() *Resolver {
	return &Resolver{
		loadScope: config.LoadScope,
		lookupEnv: os.LookupEnv,
	}
}

// NewResolverWith creates a resolver with injected collaborators.
func NewResolverWith(loadScope func(config.Scope) *config.Configuration, lookupEnv func(string) (string, bool)) *Resolver {
	return &Resolver{loadScope: loadScope, lookupEnv: lookupEnv}
}

// Effective resolves the language to use for an invocation.
// flagValue is the per-invocation override (empty when the flag was not
// given); unsupported codes at any tier are skipped, not errors.
func (r *Resolver) Effective(flagValue string) string {
	if code := normalize(flagValue); code != "" && IsSupported(code) {
		return code
	}
	// Env outranks the config files, matching the loader's precedence.
	if value, ok := r.lookupEnv("SLASHCMD_LANGUAGE"); ok {
		if code := normalize(value); code != "" && IsSupported(code) {
			return code
		}
	}
	if code := normalize(r.loadScope(config.ScopeProject).Language); code != "" && IsSupported(code) {
		return code
	}
	if code := normalize(r.loadScope(config.ScopeUser).Language); code != "" && IsSupported(code) {
		return code
	}
	if code := r.localeLanguage(); code != "" {
		return code
	}
	return Fallback
}

// EffectiveConfig shallow-merges project config over user config,
// project values winning per key.
func (r *Resolver) EffectiveConfig() *config.Configuration {
	return config.Merge(r.loadScope(config.ScopeUser), r.loadScope(config.ScopeProject))
}

// localeLanguage derives a supported code from the POSIX locale
// environment, checked in the conventional priority order.
func (r *Resolver) localeLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"} {
		value, ok := r.lookupEnv(name)
		if !ok || value == "" {
			continue
		}
		// "es_ES.UTF-8" -> "es", "pt_BR" -> "pt".
		code := strings.ToLower(value)
		if i := strings.IndexAny(code, "_.@:"); i >= 0 {
			code = code[:i]
		}
		if IsSupported(code) {
			return code
		}
	}
	return ""
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// StatusEntry annotates one supported language with repository and cache
// availability.
type StatusEntry struct {
	Code      string
	Name      string
	Available bool
	Commands  int
	Cached    bool
}

// StatusList cross-references the supported codes against
// repository-reported command counts and locally cached languages.
// Purely derived; inputs are not mutated.
func StatusList(counts map[string]int, cached []string) []StatusEntry {
	cachedSet := make(map[string]bool, len(cached))
	for _, code := range cached {
		cachedSet[code] = true
	}

	entries := make([]StatusEntry, 0, len(supported))
	for _, code := range Codes() {
		count := counts[code]
		entries = append(entries, StatusEntry{
			Code:      code,
			Name:      supported[code],
			Available: count > 0,
			Commands:  count,
			Cached:    cachedSet[code],
		})
	}
	return entries
}
