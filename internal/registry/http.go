package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/manifest"
)

// DefaultTimeout bounds a single manifest fetch.
const DefaultTimeout = 15 * time.Second

// HTTPFetcher fetches manifests from raw repository URLs of the form
// <base>/<language>/manifest.json.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithClient overrides the HTTP client.
func WithClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) { f.client = client }
}

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) HTTPOption {
	return func(f *HTTPFetcher) { f.now = now }
}

// NewHTTPFetcher creates a fetcher rooted at baseURL.
func NewHTTPFetcher(baseURL string, opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves and decodes the manifest for a language.
func (f *HTTPFetcher) Fetch(ctx context.Context, language string, force bool) (*manifest.Manifest, error) {
	url := fmt.Sprintf("%s/%s/manifest.json", f.baseURL, language)
	body, err := f.get(ctx, url, force)
	if err != nil {
		return nil, err
	}

	var m manifest.Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.Wrap(err, errors.Fetch, fmt.Sprintf("decoding manifest from %s", url))
	}
	if m.Language == "" {
		m.Language = language
	}
	m.FetchedAt = f.now().UTC()
	return &m, nil
}

// FetchFile retrieves a command source file for a language, e.g. the
// markdown body referenced by a command's file field.
func (f *HTTPFetcher) FetchFile(ctx context.Context, language, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", f.baseURL, language, strings.TrimLeft(path, "/"))
	return f.get(ctx, url, true)
}

func (f *HTTPFetcher) get(ctx context.Context, url string, force bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.Fetch, "creating request")
	}
	if force {
		// Bypass any intermediary caches on forced refresh.
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.Fetch, fmt.Sprintf("requesting %s", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrap(ErrNotPublished, errors.Fetch, fmt.Sprintf("%s not found (status 404)", url))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.Fetch, "unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.Fetch, "reading response")
	}
	return body, nil
}
