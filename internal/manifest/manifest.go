// Package manifest reads and writes checksum manifests for extracted source
// trees. The format is the one produced by sha256sum: one line per file,
// "<lowercase hex digest>  <relative path>", so an extraction can be checked
// with `sha256sum -c SHA256SUMS` as well as with Verify.
package manifest

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/sourceit/internal/sourced"
)

// DefaultName is the manifest file name written at the extraction root.
const DefaultName = "SHA256SUMS"

// Entry is one manifest line.
type Entry struct {
	Path string `json:"path"`
	Sum  string `json:"sha256"`
}

// Sum returns the lowercase hex SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Write emits entries to w in the order given.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s  %s\n", e.Sum, e.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Parse reads a manifest. Blank lines are skipped; the sha256sum binary
// marker ("<hex> *<path>") is accepted. Paths are normalized and must stay
// inside the manifest's directory.
//
// A trailing '\r' is stripped from every line so CRLF manifests parse. This
// is lossless only because sourced.NormalizePath rejects control characters,
// so no written path can end in '\r' itself.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return entries, nil
}

func parseLine(line string) (Entry, error) {
	sum, rest, ok := strings.Cut(line, " ")
	if !ok || len(rest) < 2 {
		return Entry{}, fmt.Errorf("malformed entry %q", line)
	}
	if !isHexDigest(sum) {
		return Entry{}, fmt.Errorf("invalid digest %q", sum)
	}
	// Text mode uses a second space, binary mode a '*'.
	if rest[0] != ' ' && rest[0] != '*' {
		return Entry{}, fmt.Errorf("malformed entry %q", line)
	}
	p, err := sourced.NormalizePath(rest[1:])
	if err != nil {
		return Entry{}, fmt.Errorf("path %q: %w", rest[1:], err)
	}
	return Entry{Path: p, Sum: strings.ToLower(sum)}, nil
}

func isHexDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
