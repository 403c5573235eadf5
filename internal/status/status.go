package status

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/manifest"
)

// Verdict summarizes whether an extraction still matches its manifest.
type Verdict string

const (
	VerdictUnchecked  Verdict = "unchecked"
	VerdictIntact     Verdict = "intact"
	VerdictModified   Verdict = "modified"
	VerdictNoManifest Verdict = "no manifest"
)

// Extraction describes one output directory found under a root.
type Extraction struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"createdAt"`
	Attempt     int       `json:"attempt"`
	FileCount   int       `json:"fileCount"`
	HasManifest bool      `json:"hasManifest"`
	Verdict     Verdict   `json:"verdict"`
	Failures    []string  `json:"failures,omitempty"`
}

// Options selects which directories count as extractions.
type Options struct {
	Prefix       string // defaults to extract.DefaultPrefix
	ProgramName  string
	ManifestName string // defaults to manifest.DefaultName
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return extract.DefaultPrefix
	}
	return o.Prefix
}

func (o Options) manifestName() string {
	if o.ManifestName == "" {
		return manifest.DefaultName
	}
	return o.ManifestName
}

// ListExtractions scans root for directories created by extract for the
// given program, oldest first. A missing root yields an empty list.
func ListExtractions(root string, opts Options) ([]Extraction, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var results []Extraction
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, attempt, ok := extract.ParseDirName(opts.prefix(), opts.ProgramName, entry.Name())
		if !ok {
			continue
		}
		ex := Extraction{
			Name:      entry.Name(),
			Path:      filepath.Join(root, entry.Name()),
			CreatedAt: ts,
			Attempt:   attempt,
			Verdict:   VerdictUnchecked,
		}
		if count, err := countEntries(filepath.Join(ex.Path, opts.manifestName())); err == nil {
			ex.FileCount = count
			ex.HasManifest = true
		}
		results = append(results, ex)
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].Attempt < results[j].Attempt
	})
	return results, nil
}

// Check lists extractions like ListExtractions and verifies each one
// against its manifest.
func Check(ctx context.Context, root string, opts Options, concurrency int) ([]Extraction, error) {
	results, err := ListExtractions(root, opts)
	if err != nil {
		return nil, err
	}
	for i := range results {
		ex := &results[i]
		if !ex.HasManifest {
			ex.Verdict = VerdictNoManifest
			continue
		}
		report, err := manifest.Verify(ctx, ex.Path, manifest.Options{
			Name:        opts.manifestName(),
			Concurrency: concurrency,
		})
		if err != nil {
			return nil, fmt.Errorf("verify %s: %w", ex.Name, err)
		}
		ex.Verdict = VerdictIntact
		for _, f := range report.Failures() {
			ex.Verdict = VerdictModified
			ex.Failures = append(ex.Failures, fmt.Sprintf("%s: %s", f.Path, f.Status))
		}
	}
	return results, nil
}

func countEntries(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	entries, err := manifest.Parse(f)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
