package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dusk-indust/sourceit/internal/sourced"
)

// Mismatch describes a record whose extracted copy no longer matches.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Compare checks an extracted directory against the records it was
// extracted from and returns one Mismatch per missing or changed file, in
// record order. Files on disk that are not among the records are ignored.
func Compare(dir string, files []sourced.File) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, f := range files {
		rel, err := sourced.NormalizePath(f.Path())
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", f.Path(), err)
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if errors.Is(err, fs.ErrNotExist) {
			mismatches = append(mismatches, Mismatch{Path: rel, Reason: "missing"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		if string(data) != f.Content() {
			mismatches = append(mismatches, Mismatch{
				Path:   rel,
				Reason: fmt.Sprintf("content differs (%d bytes on disk, %d embedded)", len(data), len(f.Content())),
			})
		}
	}
	return mismatches, nil
}
