package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of files hashed at once by Verify.
const DefaultConcurrency = 4

// Status is the verification verdict for one manifest entry.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMismatch Status = "mismatch"
	StatusMissing  Status = "missing"
)

// FileResult is the outcome of checking one entry against the disk.
type FileResult struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
	Status   Status `json:"status"`
}

// Report is the outcome of verifying a whole directory. Files are in
// manifest order.
type Report struct {
	Dir      string       `json:"dir"`
	Manifest string       `json:"manifest"`
	Files    []FileResult `json:"files"`
}

// OK reports whether every entry matched.
func (r *Report) OK() bool {
	for _, f := range r.Files {
		if f.Status != StatusOK {
			return false
		}
	}
	return true
}

// Failures returns the entries that did not match.
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status != StatusOK {
			out = append(out, f)
		}
	}
	return out
}

// Options configures Verify.
type Options struct {
	// Name is the manifest file name inside the directory. Defaults to DefaultName.
	Name string
	// Concurrency bounds parallel hashing. Defaults to DefaultConcurrency.
	Concurrency int
}

// Verify reads the manifest in dir and re-hashes every file it lists.
// Mismatched and missing files are reported in the Report, not as errors;
// the error return is reserved for an unreadable manifest, an unreadable
// file, or context cancellation.
func Verify(ctx context.Context, dir string, opts Options) (*Report, error) {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	manifestPath := filepath.Join(dir, name)
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	entries, err := Parse(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestPath, err)
	}

	results := make([]FileResult, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := FileResult{Path: e.Path, Expected: e.Sum}
			sum, err := hashFile(filepath.Join(dir, filepath.FromSlash(e.Path)))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				res.Status = StatusMissing
			case err != nil:
				return fmt.Errorf("hash %s: %w", e.Path, err)
			case sum != e.Sum:
				res.Actual = sum
				res.Status = StatusMismatch
			default:
				res.Actual = sum
				res.Status = StatusOK
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Dir:      dir,
		Manifest: manifestPath,
		Files:    results,
	}, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
