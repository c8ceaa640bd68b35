// Package install places fetched command files into a Claude Code
// commands directory.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slashcmd/slashcmd/internal/manifest"
	"github.com/slashcmd/slashcmd/internal/namespace"
	"github.com/slashcmd/slashcmd/internal/registry"
)

// DefaultProjectDir is where commands install relative to the project.
const DefaultProjectDir = ".claude/commands"

// Result reports where one command file ended up.
type Result struct {
	// Name is the canonical command name.
	Name string
	// Action is "installed" for a new file or "updated" for an overwrite.
	Action string
	// Path is the written file path.
	Path string
}

// Installer writes command files fetched from the registry.
type Installer struct {
	dir     string
	fetcher registry.FileFetcher
}

// New creates an installer targeting dir.
func New(dir string, fetcher registry.FileFetcher) *Installer {
	return &Installer{dir: dir, fetcher: fetcher}
}

// UserDir returns the user-level commands directory (~/.claude/commands).
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "commands"), nil
}

// Install fetches a command's source file and writes it under the
// target directory. Namespaced commands nest into subdirectories, so
// "project:frontend:component" lands at project/frontend/component.md
// and Claude Code surfaces it under the same namespace.
func (i *Installer) Install(ctx context.Context, language string, cmd manifest.Command) (*Result, error) {
	body, err := i.fetcher.FetchFile(ctx, language, cmd.File)
	if err != nil {
		return nil, err
	}

	relPath, err := commandPath(cmd.Name)
	if err != nil {
		return nil, err
	}
	target := filepath.Join(i.dir, relPath)

	action := "installed"
	if _, err := os.Stat(target); err == nil {
		action = "updated"
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("creating commands directory: %w", err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return nil, fmt.Errorf("writing command file: %w", err)
	}

	return &Result{Name: cmd.Name, Action: action, Path: target}, nil
}

// commandPath maps a command name to its file path within the commands
// directory.
func commandPath(name string) (string, error) {
	parsed, err := namespace.Parse(name)
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(parsed.Path) + ".md", nil
}
