// Package service orchestrates the cache, the fetch collaborator, and
// the diff engine to answer list/search/info/update requests with
// cache-first semantics.
//
// The Coordinator is built once in the composition root and injected
// where needed; there is no process-wide singleton. Reads go memo ->
// disk cache -> network; ForceRefresh skips both reads but still writes
// both layers.
package service

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/slashcmd/slashcmd/internal/cache"
	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/language"
	"github.com/slashcmd/slashcmd/internal/manifest"
	"github.com/slashcmd/slashcmd/internal/namespace"
	"github.com/slashcmd/slashcmd/internal/registry"
)

// memoTTL bounds the in-process manifest memo. Invocations are short
// lived, so this only matters when one command touches the same
// language several times (e.g. language status).
const memoTTL = 5 * time.Minute

// Options select the language and freshness for one request.
type Options struct {
	// Language is the per-invocation override; empty resolves through
	// the precedence chain.
	Language string
	// ForceRefresh treats the cache as stale and always fetches.
	ForceRefresh bool
}

// UpdateResult reports one completed cache refresh.
type UpdateResult struct {
	Language     string    `json:"language"`
	Timestamp    time.Time `json:"timestamp"`
	CommandCount int       `json:"command_count"`
}

// UpdateChangesResult is an UpdateResult plus the structural diff
// against the previous snapshot.
type UpdateChangesResult struct {
	UpdateResult
	HasChanges bool                 `json:"has_changes"`
	Added      int                  `json:"added"`
	Removed    int                  `json:"removed"`
	Modified   int                  `json:"modified"`
	Comparison *manifest.Comparison `json:"comparison,omitempty"`
}

// Coordinator answers command queries with cache-first semantics.
type Coordinator struct {
	store    *cache.Store
	fetcher  registry.Fetcher
	resolver *language.Resolver
	memo     *gocache.Cache
}

// New creates a Coordinator.
func New(store *cache.Store, fetcher registry.Fetcher, resolver *language.Resolver) *Coordinator {
	return &Coordinator{
		store:    store,
		fetcher:  fetcher,
		resolver: resolver,
		memo:     gocache.New(memoTTL, 2*memoTTL),
	}
}

// List returns every command in the resolved manifest, in manifest order.
func (c *Coordinator) List(ctx context.Context, opts Options) ([]manifest.Command, error) {
	m, lang, err := c.resolveManifest(ctx, opts)
	if err != nil {
		return nil, tag(err, "list", lang)
	}
	return m.Commands, nil
}

// Search returns the commands whose name or description contains the
// query, case-insensitively, in manifest order. A blank query is a
// validation error.
func (c *Coordinator) Search(ctx context.Context, query string, opts Options) ([]manifest.Command, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewValidation("search query is empty",
			"provide a word to match against command names and descriptions").
			WithOp("search", "")
	}

	m, lang, err := c.resolveManifest(ctx, opts)
	if err != nil {
		return nil, tag(err, "search", lang)
	}

	needle := strings.ToLower(query)
	var matches []manifest.Command
	for _, cmd := range m.Commands {
		if strings.Contains(strings.ToLower(cmd.Name), needle) ||
			strings.Contains(strings.ToLower(cmd.Description), needle) {
			matches = append(matches, cmd)
		}
	}
	return matches, nil
}

// Info returns a single command by name. The name may use colon or
// slash notation; it is canonicalized before lookup.
func (c *Coordinator) Info(ctx context.Context, name string, opts Options) (manifest.Command, error) {
	canonical, err := namespace.ToColonSeparated(name)
	if err != nil {
		return manifest.Command{}, tag(err, "info", "")
	}

	m, lang, err := c.resolveManifest(ctx, opts)
	if err != nil {
		return manifest.Command{}, tag(err, "info", lang)
	}

	if cmd, ok := m.Lookup(canonical); ok {
		return cmd, nil
	}
	// Manifest entries may themselves use slash notation.
	for _, cmd := range m.Commands {
		cmdName, err := namespace.ToColonSeparated(cmd.Name)
		if err != nil {
			cmdName = cmd.Name
		}
		if cmdName == canonical {
			return cmd, nil
		}
	}

	return manifest.Command{}, errors.Newf(errors.NotFound, "command %q not found", canonical).
		WithOp("info", lang)
}

// Update force-fetches the manifest for the resolved language and
// replaces the cache entry.
func (c *Coordinator) Update(ctx context.Context, opts Options) (*UpdateResult, error) {
	lang := c.resolver.Effective(opts.Language)
	m, err := c.refresh(ctx, lang, true)
	if err != nil {
		return nil, tag(err, "update", lang)
	}
	return &UpdateResult{
		Language:     lang,
		Timestamp:    m.FetchedAt,
		CommandCount: len(m.Commands),
	}, nil
}

// UpdateWithChanges force-fetches like Update and additionally compares
// the fresh manifest against the previous cache entry. With no prior
// entry every fetched command reports as added.
func (c *Coordinator) UpdateWithChanges(ctx context.Context, opts Options) (*UpdateChangesResult, error) {
	lang := c.resolver.Effective(opts.Language)

	previous, hadPrevious := c.store.Get(lang)
	if !hadPrevious {
		previous = manifest.Empty(lang)
	}

	fresh, err := c.refresh(ctx, lang, true)
	if err != nil {
		return nil, tag(err, "update", lang)
	}

	comparison, err := manifest.Compare(previous, fresh)
	if err != nil {
		return nil, tag(err, "update", lang)
	}

	return &UpdateChangesResult{
		UpdateResult: UpdateResult{
			Language:     lang,
			Timestamp:    fresh.FetchedAt,
			CommandCount: len(fresh.Commands),
		},
		HasChanges: comparison.Summary.HasChanges,
		Added:      comparison.Summary.Added,
		Removed:    comparison.Summary.Removed,
		Modified:   comparison.Summary.Modified,
		Comparison: comparison,
	}, nil
}

// UpdateAll refreshes every supported language concurrently. Languages
// the repository does not publish are skipped; any other failure,
// transport failures included, aborts the group.
func (c *Coordinator) UpdateAll(ctx context.Context) ([]UpdateResult, error) {
	var (
		mu      sync.Mutex
		results []UpdateResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, lang := range language.Codes() {
		lang := lang
		g.Go(func() error {
			m, err := c.refresh(ctx, lang, true)
			if err != nil {
				if stderrors.Is(err, registry.ErrNotPublished) {
					// Not every language exists upstream.
					return nil
				}
				return tag(err, "update", lang)
			}
			mu.Lock()
			results = append(results, UpdateResult{
				Language:     lang,
				Timestamp:    m.FetchedAt,
				CommandCount: len(m.Commands),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Language < results[j].Language })
	return results, nil
}

// CommandCounts returns the cached command count per language, for
// language status annotations. Only local snapshots are consulted; no
// network traffic.
func (c *Coordinator) CommandCounts() map[string]int {
	counts := map[string]int{}
	for _, lang := range c.store.CachedLanguages() {
		if m, ok := c.store.Get(lang); ok {
			counts[lang] = len(m.Commands)
		}
	}
	return counts
}

// resolveManifest implements the cache-first read path.
func (c *Coordinator) resolveManifest(ctx context.Context, opts Options) (*manifest.Manifest, string, error) {
	lang := c.resolver.Effective(opts.Language)

	if !opts.ForceRefresh {
		if cached, ok := c.memo.Get(lang); ok {
			return cached.(*manifest.Manifest), lang, nil
		}
		if m, ok := c.store.Get(lang); ok && !c.store.Expired(lang) {
			c.memo.SetDefault(lang, m)
			return m, lang, nil
		}
	}

	m, err := c.refresh(ctx, lang, opts.ForceRefresh)
	if err != nil {
		return nil, lang, err
	}
	return m, lang, nil
}

// refresh fetches a fresh manifest and writes it through both cache
// layers. force is passed to the collaborator only when the caller
// asked for it: a plain TTL-expiry refill is an ordinary fetch.
// Fetch failures propagate untouched in kind; a cache write failure
// after a good fetch is surfaced since the snapshot the user just paid
// for would otherwise be lost silently.
func (c *Coordinator) refresh(ctx context.Context, lang string, force bool) (*manifest.Manifest, error) {
	m, err := c.fetcher.Fetch(ctx, lang, force)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(lang, m); err != nil {
		return nil, err
	}
	c.memo.SetDefault(lang, m)
	return m, nil
}

// tag stamps the operation and language onto structured errors without
// changing their kind.
func tag(err error, op, lang string) error {
	if e := errors.AsError(err); e != nil {
		return e.WithOp(op, lang)
	}
	return err
}
