package manifest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree writes files and a manifest covering them into a temp dir.
func writeTree(t *testing.T, files map[string]string, order []string) string {
	t.Helper()
	dir := t.TempDir()
	var entries []Entry
	for _, p := range order {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(files[p]), 0o644))
		entries = append(entries, Entry{Path: p, Sum: Sum([]byte(files[p]))})
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultName), buf.Bytes(), 0o644))
	return dir
}

func TestVerify_AllOK(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	}, []string{"a.txt", "sub/b.txt"})

	report, err := Verify(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Failures())
	require.Len(t, report.Files, 2)
	assert.Equal(t, "a.txt", report.Files[0].Path)
	assert.Equal(t, helloSum, report.Files[0].Actual)
	assert.Equal(t, "sub/b.txt", report.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, DefaultName), report.Manifest)
}

func TestVerify_DetectsTamperingAndDeletion(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
		"c.txt":     "third",
	}, []string{"a.txt", "sub/b.txt", "c.txt"})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("HELLO"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, "sub", "b.txt")))

	report, err := Verify(context.Background(), dir, Options{Concurrency: 1})
	require.NoError(t, err)
	assert.False(t, report.OK())

	assert.Equal(t, StatusMismatch, report.Files[0].Status)
	assert.Equal(t, Sum([]byte("HELLO")), report.Files[0].Actual)
	assert.Equal(t, StatusMissing, report.Files[1].Status)
	assert.Equal(t, StatusOK, report.Files[2].Status)

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "a.txt", failures[0].Path)
	assert.Equal(t, "sub/b.txt", failures[1].Path)
}

func TestVerify_CustomManifestName(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "hello"}, []string{"a.txt"})
	require.NoError(t, os.Rename(filepath.Join(dir, DefaultName), filepath.Join(dir, "CHECKSUMS")))

	_, err := Verify(context.Background(), dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open manifest")

	report, err := Verify(context.Background(), dir, Options{Name: "CHECKSUMS"})
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestVerify_MalformedManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultName), []byte("not a manifest\n"), 0o644))

	_, err := Verify(context.Background(), dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestVerify_CancelledContext(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "hello"}, []string{"a.txt"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Verify(ctx, dir, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
