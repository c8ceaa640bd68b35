package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashcmd/slashcmd/internal/cache"
	"github.com/slashcmd/slashcmd/internal/config"
	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/language"
	"github.com/slashcmd/slashcmd/internal/manifest"
	"github.com/slashcmd/slashcmd/internal/registry"
)

// stubFetcher serves canned manifests and records fetch traffic.
// Safe for concurrent use; UpdateAll drives it from several goroutines.
type stubFetcher struct {
	manifests map[string]*manifest.Manifest
	err       error

	mu     sync.Mutex
	calls  int
	forces []bool
}

func (s *stubFetcher) Fetch(ctx context.Context, lang string, force bool) (*manifest.Manifest, error) {
	s.mu.Lock()
	s.calls++
	s.forces = append(s.forces, force)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.manifests[lang]
	if !ok {
		return nil, errors.Wrap(registry.ErrNotPublished, errors.Fetch, fmt.Sprintf("no manifest for %q", lang))
	}
	snapshot := *m
	snapshot.FetchedAt = time.Now().UTC()
	return &snapshot, nil
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubFetcher) forced() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.forces...)
}

func fixedResolver(lang string) *language.Resolver {
	return language.NewResolverWith(
		func(config.Scope) *config.Configuration { return &config.Configuration{Language: lang} },
		func(string) (string, bool) { return "", false },
	)
}

func enManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Language: "en",
		Commands: []manifest.Command{
			{Name: "deploy", Description: "Deploy the app", File: "deploy.md", AllowedTools: []string{"Bash"}},
			{Name: "project:frontend:component", Description: "Scaffold a component", File: "component.md"},
			{Name: "review", Description: "Review a pull request", File: "review.md"},
		},
	}
}

func newTestCoordinator(t *testing.T, fetcher *stubFetcher) (*Coordinator, *cache.Store) {
	t.Helper()
	store := cache.NewStore(t.TempDir())
	return New(store, fetcher, fixedResolver("en")), store
}

func TestListFetchesOnCacheMiss(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)

	cmds, err := coord.List(context.Background(), Options{})
	require.NoError(t, err)
	assert.Len(t, cmds, 3)
	assert.Equal(t, 1, fetcher.callCount())

	// The fetch populated the disk cache.
	_, ok := store.Get("en")
	assert.True(t, ok)
}

func TestListServesFromCache(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", enManifest()))

	_, err := coord.List(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, fetcher.callCount(), "fresh cache must not hit the network")
}

func TestListForceRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", enManifest()))

	_, err := coord.List(context.Background(), Options{ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestListExpiredCacheRefetches(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	current := time.Now()
	store := cache.NewStore(t.TempDir(), cache.WithClock(func() time.Time { return current }))
	coord := New(store, fetcher, fixedResolver("en"))
	require.NoError(t, store.Set("en", enManifest()))

	current = current.Add(48 * time.Hour)

	_, err := coord.List(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.callCount(), "expired cache must refetch")
}

func TestSearch(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	matches, err := coord.Search(ctx, "DEPLOY", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "deploy", matches[0].Name)

	matches, err = coord.Search(ctx, "pull request", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "review", matches[0].Name)

	matches, err = coord.Search(ctx, "nothing-matches-this", Options{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchBlankQuery(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, _ := newTestCoordinator(t, fetcher)

	_, err := coord.Search(context.Background(), "   ", Options{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Validation))
	assert.Equal(t, 0, fetcher.callCount(), "validation precedes any fetch")
}

func TestInfo(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	cmd, err := coord.Info(ctx, "deploy", Options{})
	require.NoError(t, err)
	assert.Equal(t, "deploy", cmd.Name)

	// Slash notation canonicalizes to the colon form before lookup.
	cmd, err = coord.Info(ctx, "project/frontend/component", Options{})
	require.NoError(t, err)
	assert.Equal(t, "project:frontend:component", cmd.Name)
}

func TestInfoNotFound(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, _ := newTestCoordinator(t, fetcher)

	_, err := coord.Info(context.Background(), "missing", Options{})
	require.Error(t, err)
	e := errors.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, errors.NotFound, e.Kind)
	assert.Equal(t, "info", e.Op)
	assert.Equal(t, "en", e.Language)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", enManifest()))

	res, err := coord.Update(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, 3, res.CommandCount)
	assert.Equal(t, 1, fetcher.callCount(), "update always force-fetches")
}

func TestUpdateFetchFailurePropagates(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.NewFetch("connection refused")}
	coord, _ := newTestCoordinator(t, fetcher)

	_, err := coord.Update(context.Background(), Options{})
	require.Error(t, err)
	e := errors.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, errors.Fetch, e.Kind, "fetch kind must propagate untouched")
	assert.Equal(t, "update", e.Op)
	assert.Equal(t, "en", e.Language)
}

func TestUpdateWithChangesNoPriorEntry(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, _ := newTestCoordinator(t, fetcher)

	res, err := coord.UpdateWithChanges(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Added, "every fetched command reports as added")
	assert.Equal(t, 0, res.Removed)
	assert.Equal(t, 0, res.Modified)
	assert.True(t, res.HasChanges)
	require.NotNil(t, res.Comparison)
	assert.Equal(t, res.Comparison.Summary.Total, res.Added)
}

func TestUpdateWithChangesAgainstPrevious(t *testing.T) {
	t.Parallel()

	previous := enManifest()
	updated := enManifest()
	updated.Commands[0].Description = "Deploy the app to production"
	updated.Commands = append(updated.Commands[:2], manifest.Command{Name: "rollback", Description: "Roll back", File: "rollback.md"})

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": updated}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", previous))

	res, err := coord.UpdateWithChanges(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, res.Modified)
	assert.True(t, res.HasChanges)
}

func TestUpdateWithChangesIdentical(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", enManifest()))

	res, err := coord.UpdateWithChanges(context.Background(), Options{})
	require.NoError(t, err)
	assert.False(t, res.HasChanges)
	assert.Equal(t, 0, res.Added+res.Removed+res.Modified)
}

func TestUpdateAllSkipsUnpublishedLanguages(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{
		"en": enManifest(),
		"fr": {Language: "fr", Commands: []manifest.Command{{Name: "deployer", Description: "Deployer", File: "deployer.md"}}},
	}}
	coord, _ := newTestCoordinator(t, fetcher)

	results, err := coord.UpdateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "en", results[0].Language)
	assert.Equal(t, "fr", results[1].Language)
}

func TestUpdateAllSurfacesTransportFailure(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.NewFetch("connection refused")}
	coord, _ := newTestCoordinator(t, fetcher)

	results, err := coord.UpdateAll(context.Background())
	require.Error(t, err, "a transport failure must not read as zero published languages")
	assert.Nil(t, results)
	assert.True(t, errors.IsKind(err, errors.Fetch))
}

func TestRefreshForceFollowsCaller(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	current := time.Now()
	store := cache.NewStore(t.TempDir(), cache.WithClock(func() time.Time { return current }))
	coord := New(store, fetcher, fixedResolver("en"))
	require.NoError(t, store.Set("en", enManifest()))

	current = current.Add(48 * time.Hour)

	// A TTL-expiry refill is an ordinary fetch; only an explicit
	// ForceRefresh reaches the collaborator with force set.
	_, err := coord.List(context.Background(), Options{})
	require.NoError(t, err)
	_, err = coord.List(context.Background(), Options{ForceRefresh: true})
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true}, fetcher.forced())
}

func TestCommandCounts(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{manifests: map[string]*manifest.Manifest{"en": enManifest()}}
	coord, store := newTestCoordinator(t, fetcher)
	require.NoError(t, store.Set("en", enManifest()))

	counts := coord.CommandCounts()
	assert.Equal(t, map[string]int{"en": 3}, counts)
	assert.Equal(t, 0, fetcher.callCount())
}
