// Package registry fetches per-language command manifests from the
// remote repository.
//
// Two transports are provided: HTTPFetcher reads raw manifest URLs, and
// GitFetcher shallow-clones the commands repository. Neither retries;
// network failures, timeouts, and non-2xx statuses surface as
// Fetch-kind errors for the calling layer to handle. Cancellation is
// the caller's context.
package registry

import (
	"context"
	stderrors "errors"

	"github.com/slashcmd/slashcmd/internal/config"
	"github.com/slashcmd/slashcmd/internal/manifest"
)

// ErrNotPublished marks a Fetch failure meaning the repository simply
// does not publish the requested language, as opposed to a transport
// failure. Wrapped inside the Fetch-kind error; test with errors.Is.
var ErrNotPublished = stderrors.New("language not published")

// Fetcher retrieves a fresh manifest for one language.
type Fetcher interface {
	// Fetch returns the manifest for a language. force is advisory:
	// transports that cache internally must bypass that cache when set.
	Fetch(ctx context.Context, language string, force bool) (*manifest.Manifest, error)
}

// FileFetcher retrieves a single command source file for one language.
type FileFetcher interface {
	FetchFile(ctx context.Context, language, path string) ([]byte, error)
}

// ForConfig selects the fetcher the configuration asks for.
func ForConfig(cfg *config.Configuration) Fetcher {
	if cfg != nil && cfg.Registry.Source == "git" {
		url := cfg.Registry.GitURL
		if url == "" {
			url = config.DefaultRegistryGitURL
		}
		return NewGitFetcher(url)
	}
	base := config.DefaultRegistryBaseURL
	if cfg != nil && cfg.Registry.BaseURL != "" {
		base = cfg.Registry.BaseURL
	}
	return NewHTTPFetcher(base)
}
