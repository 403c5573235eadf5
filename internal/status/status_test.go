package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/sourced"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractAt(t *testing.T, root, program string, at time.Time, files ...sourced.File) *extract.Result {
	t.Helper()
	e := &extract.Extractor{Clock: extract.FixedClock(at)}
	res, err := e.Extract(extract.Request{ProgramName: program, DestinationRoot: root, Files: files})
	require.NoError(t, err)
	return res
}

func TestListExtractions_MissingRoot(t *testing.T) {
	got, err := ListExtractions(filepath.Join(t.TempDir(), "nope"), Options{ProgramName: "demo"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListExtractions_OrderAndFiltering(t *testing.T) {
	root := t.TempDir()
	early := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	extractAt(t, root, "demo", late, sourced.New("a.txt", "a"))
	extractAt(t, root, "demo", early, sourced.New("a.txt", "a"), sourced.New("b.txt", "b"))
	extractAt(t, root, "demo", early, sourced.New("a.txt", "a"))
	extractAt(t, root, "other", early, sourced.New("a.txt", "a"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "unrelated"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "source_crate_demo_20260101_080000.txt"), nil, 0o644))

	got, err := ListExtractions(root, Options{ProgramName: "demo"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "source_crate_demo_20260101_080000", got[0].Name)
	assert.Equal(t, 1, got[0].Attempt)
	assert.Equal(t, 2, got[0].FileCount)
	assert.True(t, got[0].HasManifest)
	assert.Equal(t, VerdictUnchecked, got[0].Verdict)

	assert.Equal(t, "source_crate_demo_20260101_080000_2", got[1].Name)
	assert.Equal(t, 2, got[1].Attempt)
	assert.True(t, early.Equal(got[1].CreatedAt))

	assert.Equal(t, "source_crate_demo_20260102_080000", got[2].Name)
	assert.Equal(t, filepath.Join(root, got[2].Name), got[2].Path)
}

func TestCheck_Verdicts(t *testing.T) {
	root := t.TempDir()
	intact := extractAt(t, root, "demo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), sourced.New("a.txt", "a"))
	modified := extractAt(t, root, "demo", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), sourced.New("a.txt", "a"))
	noManifest := extractAt(t, root, "demo", time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), sourced.New("a.txt", "a"))

	require.NoError(t, os.WriteFile(filepath.Join(modified.OutputDir, "a.txt"), []byte("edited"), 0o644))
	require.NoError(t, os.Remove(noManifest.ManifestPath))

	got, err := Check(context.Background(), root, Options{ProgramName: "demo"}, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, intact.OutputDir, got[0].Path)
	assert.Equal(t, VerdictIntact, got[0].Verdict)
	assert.Empty(t, got[0].Failures)

	assert.Equal(t, VerdictModified, got[1].Verdict)
	assert.Equal(t, []string{"a.txt: mismatch"}, got[1].Failures)

	assert.Equal(t, VerdictNoManifest, got[2].Verdict)
	assert.False(t, got[2].HasManifest)
}

func TestListExtractions_CustomPrefix(t *testing.T) {
	root := t.TempDir()
	e := &extract.Extractor{Prefix: "src", ManifestName: "SUMS", Clock: extract.FixedClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))}
	_, err := e.Extract(extract.Request{ProgramName: "tool", DestinationRoot: root, Files: []sourced.File{sourced.New("x", "y")}})
	require.NoError(t, err)

	got, err := ListExtractions(root, Options{Prefix: "src", ProgramName: "tool", ManifestName: "SUMS"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].FileCount)

	got, err = ListExtractions(root, Options{ProgramName: "tool"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
