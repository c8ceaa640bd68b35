// Package cache owns the on-disk, per-language manifest snapshots and
// their freshness policy.
//
// One JSON file per language lives under the cache directory. Entries are
// replaced wholesale on refresh and never partially mutated; writes go to
// a temp file in the same directory followed by a rename, so a concurrent
// reader in another invocation never observes a half-written snapshot.
// Staleness from a lost last-writer-wins race is bounded by the TTL.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/manifest"
)

// DefaultTTL is the cache validity window before a snapshot is stale.
const DefaultTTL = 24 * time.Hour

// Entry is the persisted cache record for one language.
// Unknown JSON fields are ignored on decode for forward compatibility.
type Entry struct {
	Language   string             `json:"language"`
	Manifest   *manifest.Manifest `json:"manifest"`
	StoredAt   time.Time          `json:"stored_at"`
	TTLSeconds int64              `json:"ttl_seconds,omitempty"`
}

// Store reads and writes per-language cache entries under a directory.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir: dir,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultDir returns the platform cache directory for slashcmd
// (e.g. ~/.cache/slashcmd on Linux).
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "slashcmd"), nil
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the cached manifest for a language, if a readable snapshot
// exists. An unreadable or corrupt entry is a cache miss, never an error;
// the next Set overwrites it and the cache self-heals. Expiry does not
// affect Get; callers distinguish absent from present-but-stale via
// Expired.
func (s *Store) Get(language string) (*manifest.Manifest, bool) {
	entry, ok := s.readEntry(language)
	if !ok || entry.Manifest == nil {
		return nil, false
	}
	return entry.Manifest, true
}

// GetEntry returns the full cache record for a language.
func (s *Store) GetEntry(language string) (*Entry, bool) {
	return s.readEntry(language)
}

// Set atomically replaces the cache entry for a language.
func (s *Store) Set(language string, m *manifest.Manifest) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, errors.Cache, "creating cache directory")
	}

	entry := Entry{
		Language:   language,
		Manifest:   m,
		StoredAt:   s.now().UTC(),
		TTLSeconds: int64(s.ttl / time.Second),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.Cache, "encoding cache entry")
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(s.dir, language+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.Cache, "creating temp cache file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.Cache, "writing cache entry")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.Cache, "closing temp cache file")
	}
	if err := os.Rename(tmpName, s.path(language)); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.Cache, "replacing cache entry")
	}
	return nil
}

// Expired reports whether the snapshot for a language is past its TTL.
// A missing or unreadable entry counts as expired.
func (s *Store) Expired(language string) bool {
	entry, ok := s.readEntry(language)
	if !ok {
		return true
	}
	ttl := s.ttl
	if entry.TTLSeconds > 0 {
		ttl = time.Duration(entry.TTLSeconds) * time.Second
	}
	return s.now().Sub(entry.StoredAt) > ttl
}

// Clear removes the cache entry for a language. Missing entries are fine.
func (s *Store) Clear(language string) error {
	err := os.Remove(s.path(language))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.Cache, "removing cache entry")
	}
	return nil
}

// ClearAll removes every cache entry in the store directory.
func (s *Store) ClearAll() error {
	langs, err := s.languages()
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if err := s.Clear(lang); err != nil {
			return err
		}
	}
	return nil
}

// Status describes one cached language snapshot.
type Status struct {
	Language string
	StoredAt time.Time
	Age      time.Duration
	Expired  bool
	Commands int
	Size     int64
}

// StatusList returns a status row for every readable cache entry,
// sorted by language code.
func (s *Store) StatusList() ([]Status, error) {
	langs, err := s.languages()
	if err != nil {
		return nil, err
	}
	sort.Strings(langs)

	statuses := make([]Status, 0, len(langs))
	for _, lang := range langs {
		entry, ok := s.readEntry(lang)
		if !ok {
			continue
		}
		info, err := os.Stat(s.path(lang))
		if err != nil {
			continue
		}
		count := 0
		if entry.Manifest != nil {
			count = len(entry.Manifest.Commands)
		}
		statuses = append(statuses, Status{
			Language: lang,
			StoredAt: entry.StoredAt,
			Age:      s.now().Sub(entry.StoredAt),
			Expired:  s.Expired(lang),
			Commands: count,
			Size:     info.Size(),
		})
	}
	return statuses, nil
}

// CachedLanguages returns the language codes with a readable entry.
func (s *Store) CachedLanguages() []string {
	langs, err := s.languages()
	if err != nil {
		return nil
	}
	valid := langs[:0]
	for _, lang := range langs {
		if _, ok := s.readEntry(lang); ok {
			valid = append(valid, lang)
		}
	}
	sort.Strings(valid)
	return valid
}

func (s *Store) path(language string) string {
	return filepath.Join(s.dir, language+".json")
}

func (s *Store) readEntry(language string) (*Entry, bool) {
	data, err := os.ReadFile(s.path(language))
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt snapshot degrades to a miss.
		return nil, false
	}
	if entry.Language == "" {
		entry.Language = language
	}
	return &entry, true
}

func (s *Store) languages() ([]string, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.Cache, "reading cache directory")
	}
	var langs []string
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".json"))
	}
	return langs, nil
}
