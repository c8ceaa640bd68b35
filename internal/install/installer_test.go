package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashcmd/slashcmd/internal/manifest"
)

type stubFileFetcher struct {
	files map[string][]byte
}

func (s *stubFileFetcher) FetchFile(ctx context.Context, language, path string) ([]byte, error) {
	body, ok := s.files[language+"/"+path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return body, nil
}

func TestInstall(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fetcher := &stubFileFetcher{files: map[string][]byte{
		"en/deploy.md": []byte("# Deploy\nRun the deploy.\n"),
	}}
	inst := New(dir, fetcher)

	res, err := inst.Install(context.Background(), "en", manifest.Command{
		Name: "deploy", Description: "Deploy", File: "deploy.md",
	})
	require.NoError(t, err)
	assert.Equal(t, "installed", res.Action)
	assert.Equal(t, filepath.Join(dir, "deploy.md"), res.Path)

	body, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# Deploy")
}

func TestInstallNamespacedCommandNests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fetcher := &stubFileFetcher{files: map[string][]byte{
		"en/component.md": []byte("# Component\n"),
	}}
	inst := New(dir, fetcher)

	res, err := inst.Install(context.Background(), "en", manifest.Command{
		Name: "project:frontend:component", File: "component.md",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project", "frontend", "component.md"), res.Path)
}

func TestInstallOverwriteReportsUpdated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fetcher := &stubFileFetcher{files: map[string][]byte{
		"en/deploy.md": []byte("v2\n"),
	}}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.md"), []byte("v1\n"), 0o644))
	inst := New(dir, fetcher)

	res, err := inst.Install(context.Background(), "en", manifest.Command{Name: "deploy", File: "deploy.md"})
	require.NoError(t, err)
	assert.Equal(t, "updated", res.Action)

	body, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "v2\n", string(body))
}

func TestInstallMissingSourceFile(t *testing.T) {
	t.Parallel()

	inst := New(t.TempDir(), &stubFileFetcher{})
	_, err := inst.Install(context.Background(), "en", manifest.Command{Name: "deploy", File: "deploy.md"})
	require.Error(t, err)
}
