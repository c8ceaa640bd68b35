package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned for an empty config key path.
var ErrEmptyKeyPath = errors.New("config key path is empty")

// ParseKeyPath splits a dotted config key into its segments.
// Example: "registry.base_url" -> ["registry", "base_url"].
func ParseKeyPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyKeyPath
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("config key %q has an empty segment", path)
		}
	}
	return segments, nil
}

// CoerceValue converts a raw CLI string into the YAML-natural type:
// bool, int, or string.
func CoerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}

// Set writes one key into the config file for a scope, creating the file
// and its directory when missing. Other keys in the file, known to this
// binary or not, are preserved.
func Set(scope Scope, keyPath string, value any) error {
	segments, err := ParseKeyPath(keyPath)
	if err != nil {
		return err
	}

	path, err := ConfigPath(scope)
	if err != nil {
		return err
	}

	doc := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s config %s: %w", scope, path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	}

	if err := setNested(doc, segments, value); err != nil {
		return fmt.Errorf("setting %s: %w", keyPath, err)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s config: %w", scope, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

// setNested walks the key path, creating intermediate maps as needed.
func setNested(doc map[string]any, segments []string, value any) error {
	current := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg]
		if !ok {
			child := map[string]any{}
			current[seg] = child
			current = child
			continue
		}
		child, ok := normalizeMap(next)
		if !ok {
			return fmt.Errorf("key %q holds a scalar, cannot descend into it", seg)
		}
		current[seg] = child
		current = child
	}
	current[segments[len(segments)-1]] = value
	return nil
}

// normalizeMap converts yaml.v3's map[string]any or map[any]any decodings
// into map[string]any.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
