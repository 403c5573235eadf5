package sourced

import (
	"errors"
	"path"
	"strings"
)

var (
	// ErrEmptyPath is returned for a path that is blank or resolves to the root itself.
	ErrEmptyPath = errors.New("path is required")
	// ErrAbsolutePath is returned for rooted or drive-qualified paths.
	ErrAbsolutePath = errors.New("path must be relative")
	// ErrEscapesRoot is returned when parent segments climb above the root.
	ErrEscapesRoot = errors.New("path escapes root")
	// ErrInvalidPath is returned for paths containing NUL or other control
	// characters. Manifests are line-oriented, so '\n' and '\r' cannot be stored.
	ErrInvalidPath = errors.New("path contains control character")
)

// NormalizePath converts a declared relative path into its canonical
// slash-separated form: backslashes become slashes, "." segments and
// redundant separators are dropped and inner ".." segments are resolved.
// Paths that are empty, absolute, contain control characters or climb above
// the root are rejected.
func NormalizePath(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPath
	}
	if strings.IndexFunc(raw, isControl) >= 0 {
		return "", ErrInvalidPath
	}
	cleaned := strings.ReplaceAll(raw, "\\", "/")
	if strings.HasPrefix(cleaned, "/") || hasVolume(cleaned) {
		return "", ErrAbsolutePath
	}
	cleaned = path.Clean(cleaned)
	if cleaned == "." {
		return "", ErrEmptyPath
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrEscapesRoot
	}
	return cleaned, nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// hasVolume reports whether p starts with a Windows drive letter ("C:").
func hasVolume(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
