// Package extract materializes embedded source records as a directory tree
// with a SHA-256 manifest.
//
// An extraction claims a fresh directory named
// <prefix>_<program>_<YYYYMMDD_HHMMSS> under the destination root. If that
// name is taken, _2, _3, ... are tried up to MaxAttempts; an existing
// directory is never reused. Requests are validated before any filesystem
// access. Once the directory is claimed, any failure removes it again, so a
// directory left behind by Extract is always complete.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/dusk-indust/sourceit/internal/manifest"
	"github.com/dusk-indust/sourceit/internal/sourced"
)

// Request describes one extraction.
type Request struct {
	// ProgramName is embedded in the output directory name.
	ProgramName string
	// DestinationRoot is the parent of the output directory. Empty means
	// the current working directory.
	DestinationRoot string
	// Files are written in order; the manifest follows the same order.
	Files []sourced.File
}

// Result describes a completed extraction.
type Result struct {
	OutputDir    string           `json:"outputDir"`
	FileCount    int              `json:"fileCount"`
	ManifestPath string           `json:"manifestPath"`
	Entries      []manifest.Entry `json:"entries"`
}

// Extractor writes source records to disk. The zero value is ready to use.
type Extractor struct {
	// Prefix starts the output directory name. Defaults to DefaultPrefix.
	Prefix string
	// ManifestName is the checksum file written at the output root.
	// Defaults to manifest.DefaultName.
	ManifestName string
	// MaxAttempts bounds the directory names tried. Defaults to DefaultMaxAttempts.
	MaxAttempts int
	// Clock supplies the directory timestamp. Defaults to SystemClock.
	Clock Clock
	// OnProgress, if set, is called synchronously for each milestone.
	OnProgress func(Event)

	fs      fileSystem
	newHash func() hash.Hash
}

// Extract validates req, writes every file under a new output directory and
// writes the manifest. On failure the returned error is an *Error.
func (e *Extractor) Extract(req Request) (*Result, error) {
	if err := validateComponent("prefix", e.prefix()); err != nil {
		return nil, configError(e.prefix(), err)
	}
	if err := validateComponent("manifest name", e.manifestName()); err != nil {
		return nil, configError(e.manifestName(), err)
	}
	paths, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	root, err := resolveRoot(req.DestinationRoot)
	if err != nil {
		return nil, ioError(PhaseResolveRoot, req.DestinationRoot, err)
	}
	if err := e.filesystem().MkdirAll(root, 0o755); err != nil {
		return nil, ioError(PhaseCreateDir, root, err)
	}

	dir, err := e.claimDir(root, DirName(e.prefix(), req.ProgramName, e.clock().NowUTC()))
	if err != nil {
		return nil, err
	}
	e.emit(Event{Kind: EventDirCreated, Path: dir})

	result, err := e.populate(dir, paths, req.Files)
	if err != nil {
		return nil, e.abort(dir, err)
	}
	return result, nil
}

// populate writes the files and the manifest into the claimed directory.
func (e *Extractor) populate(dir string, paths []string, files []sourced.File) (*Result, error) {
	entries := make([]manifest.Entry, 0, len(files))
	for i, f := range files {
		sum, err := e.writeFile(dir, paths[i], f.Content())
		if err != nil {
			return nil, err
		}
		entries = append(entries, manifest.Entry{Path: paths[i], Sum: sum})
		e.emit(Event{Kind: EventFileWritten, Path: paths[i], Sum: sum, Bytes: len(f.Content())})
	}

	manifestPath := filepath.Join(dir, e.manifestName())
	if err := e.writeManifest(manifestPath, entries); err != nil {
		return nil, err
	}
	e.emit(Event{Kind: EventManifestWritten, Path: e.manifestName()})

	return &Result{
		OutputDir:    dir,
		FileCount:    len(entries),
		ManifestPath: manifestPath,
		Entries:      entries,
	}, nil
}

// claimDir creates the first free candidate name under root.
func (e *Extractor) claimDir(root, base string) (string, error) {
	attempts := e.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for n := 1; n <= attempts; n++ {
		dir := filepath.Join(root, candidateName(base, n))
		err := e.filesystem().Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", ioError(PhaseCreateDir, dir, err)
		}
	}
	return "", &Error{
		Kind:  KindCollision,
		Phase: PhaseCreateDir,
		Path:  filepath.Join(root, base),
		Err:   fmt.Errorf("all %d candidate names already exist", attempts),
	}
}

// writeFile writes content to dir/rel and returns the digest of the bytes
// written.
func (e *Extractor) writeFile(dir, rel, content string) (string, error) {
	full := filepath.Join(dir, filepath.FromSlash(rel))
	fsys := e.filesystem()

	if err := fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", ioError(PhaseCreateDir, rel, err)
	}
	f, err := fsys.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", ioError(PhaseWriteFile, rel, err)
	}
	n, err := io.WriteString(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", ioError(PhaseWriteFile, rel, err)
	}

	sum, err := e.digest(content[:n])
	if err != nil {
		return "", &Error{Kind: KindHash, Phase: PhaseHash, Path: rel, Err: err}
	}
	return sum, nil
}

func (e *Extractor) writeManifest(path string, entries []manifest.Entry) error {
	f, err := e.filesystem().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ioError(PhaseWriteManifest, path, err)
	}
	err = manifest.Write(f, entries)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return ioError(PhaseWriteManifest, path, err)
	}
	return nil
}

func (e *Extractor) digest(s string) (string, error) {
	newHash := e.newHash
	if newHash == nil {
		newHash = sha256.New
	}
	h := newHash()
	if _, err := io.WriteString(h, s); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// abort removes a partially populated output directory.
func (e *Extractor) abort(dir string, cause error) error {
	if err := e.filesystem().RemoveAll(dir); err != nil {
		return errors.Join(cause, fmt.Errorf("cleanup %s: %w", dir, err))
	}
	return cause
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

func (e *Extractor) prefix() string {
	if e.Prefix == "" {
		return DefaultPrefix
	}
	return e.Prefix
}

func (e *Extractor) manifestName() string {
	if e.ManifestName == "" {
		return manifest.DefaultName
	}
	return e.ManifestName
}

func (e *Extractor) clock() Clock {
	if e.Clock == nil {
		return SystemClock{}
	}
	return e.Clock
}

func (e *Extractor) filesystem() fileSystem {
	if e.fs == nil {
		return osFS{}
	}
	return e.fs
}
