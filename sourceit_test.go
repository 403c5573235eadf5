package sourceit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_MatchPaths(t *testing.T) {
	require.Len(t, Files, len(Paths))
	for i, f := range Files {
		assert.Equal(t, Paths[i], f.Path())
		assert.NotEmpty(t, f.Content(), f.Path())
	}
}

func TestFiles_MatchWorkingTree(t *testing.T) {
	for _, f := range Files {
		data, err := os.ReadFile(filepath.FromSlash(f.Path()))
		require.NoError(t, err)
		assert.Equal(t, string(data), f.Content(), f.Path())
	}
}

func TestFiles_ExtractAndVerify(t *testing.T) {
	res, err := (&extract.Extractor{}).Extract(extract.Request{
		ProgramName:     "sourceit",
		DestinationRoot: t.TempDir(),
		Files:           Files,
	})
	require.NoError(t, err)
	assert.Equal(t, len(Files), res.FileCount)

	report, err := manifest.Verify(context.Background(), res.OutputDir, manifest.Options{})
	require.NoError(t, err)
	assert.True(t, report.OK())

	mismatches, err := extract.Compare(res.OutputDir, Files)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}
