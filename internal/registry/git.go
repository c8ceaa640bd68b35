package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/manifest"
)

// GitFetcher fetches manifests by shallow-cloning the commands
// repository and reading <language>/manifest.json from the worktree.
// The clone is made at most once per fetcher and shared by every
// language in the invocation, so it is never stale and force has
// nothing to discard. Safe for concurrent use: the mutex is held
// across each worktree read, so Close never removes a directory
// another goroutine is reading from.
type GitFetcher struct {
	url string
	now func() time.Time

	mu       sync.Mutex
	cloneDir string
}

// NewGitFetcher creates a fetcher cloning from url.
func NewGitFetcher(url string) *GitFetcher {
	return &GitFetcher{url: url, now: time.Now}
}

// Fetch clones (or reuses the invocation's clone of) the repository and
// decodes the manifest for a language.
func (f *GitFetcher) Fetch(ctx context.Context, language string, force bool) (*manifest.Manifest, error) {
	data, err := f.readFromClone(ctx, filepath.Join(language, "manifest.json"))
	if err != nil {
		if errors.AsError(err) != nil {
			return nil, err
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotPublished, errors.Fetch,
				fmt.Sprintf("no manifest for language %q in %s", language, f.url))
		}
		return nil, errors.Wrap(err, errors.Fetch, "reading manifest from clone")
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.Fetch, fmt.Sprintf("decoding %s manifest", language))
	}
	if m.Language == "" {
		m.Language = language
	}
	m.FetchedAt = f.now().UTC()
	return &m, nil
}

// FetchFile reads a command source file from the clone.
func (f *GitFetcher) FetchFile(ctx context.Context, language, path string) ([]byte, error) {
	data, err := f.readFromClone(ctx, filepath.Join(language, filepath.FromSlash(path)))
	if err != nil {
		if errors.AsError(err) != nil {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.Fetch, fmt.Sprintf("reading %s/%s from clone", language, path))
	}
	return data, nil
}

// Close removes the temporary clone, if one was made.
func (f *GitFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cloneDir == "" {
		return nil
	}
	dir := f.cloneDir
	f.cloneDir = ""
	return os.RemoveAll(dir)
}

// readFromClone ensures the clone exists and reads one file from its
// worktree. The lock spans the read so the directory cannot be removed
// out from under a concurrent reader. Clone failures come back as
// structured fetch errors; file read errors are returned raw for the
// caller to classify.
func (f *GitFetcher) readFromClone(ctx context.Context, rel string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cloneDir == "" {
		dir, err := os.MkdirTemp("", "slashcmd-registry-*")
		if err != nil {
			return nil, errors.Wrap(err, errors.Fetch, "creating clone directory")
		}

		_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
			URL:          f.url,
			Depth:        1,
			SingleBranch: true,
			Tags:         git.NoTags,
		})
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrap(err, errors.Fetch, fmt.Sprintf("cloning %s", f.url))
		}
		f.cloneDir = dir
	}

	return os.ReadFile(filepath.Join(f.cloneDir, rel))
}
