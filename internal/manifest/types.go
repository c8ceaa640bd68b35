// Package manifest defines the command manifest data model and the
// structural diff between two manifest snapshots.
//
// A manifest is the versioned collection of slash-command descriptors the
// registry publishes for one language. Snapshots are immutable once
// fetched; comparison never mutates its inputs.
package manifest

import "time"

// Command describes a single slash-command entry in a manifest.
// Name is the unique key within a manifest and may be namespaced
// (e.g. "project:frontend:component").
type Command struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	File         string   `json:"file"`
	AllowedTools []string `json:"allowed-tools,omitempty"`
}

// Equal reports whether two commands have identical content.
// AllowedTools is compared element-by-element and order-sensitively:
// a pure reordering counts as a difference.
func (c Command) Equal(other Command) bool {
	if c.Name != other.Name || c.Description != other.Description || c.File != other.File {
		return false
	}
	if len(c.AllowedTools) != len(other.AllowedTools) {
		return false
	}
	for i := range c.AllowedTools {
		if c.AllowedTools[i] != other.AllowedTools[i] {
			return false
		}
	}
	return true
}

// Manifest is one language's snapshot of available commands.
// Command order is significant: it drives deterministic diff reporting.
// Unknown JSON fields are tolerated on decode for forward compatibility.
type Manifest struct {
	Language  string    `json:"language"`
	Version   string    `json:"version,omitempty"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
	Commands  []Command `json:"commands"`
}

// Lookup returns the command with the given name, if present.
func (m *Manifest) Lookup(name string) (Command, bool) {
	for _, c := range m.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Empty returns a manifest with no commands for the given language.
// Used as the comparison baseline when no prior snapshot exists.
func Empty(language string) *Manifest {
	return &Manifest{Language: language, Commands: []Command{}}
}
