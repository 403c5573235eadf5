package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dusk-indust/sourceit/internal/sourced"
)

// validate checks a request without touching the filesystem and returns the
// normalized path of every record, in input order.
func (e *Extractor) validate(req Request) ([]string, error) {
	if err := validateComponent("program name", req.ProgramName); err != nil {
		return nil, configError(req.ProgramName, err)
	}
	if len(req.Files) == 0 {
		return nil, configError("", errors.New("no source files provided for extraction"))
	}

	manifestName := e.manifestName()
	paths := make([]string, len(req.Files))
	seen := make(map[string]string, len(req.Files))

	for i, f := range req.Files {
		p, err := sourced.NormalizePath(f.Path())
		if err != nil {
			return nil, configError(f.Path(), err)
		}
		if prev, dup := seen[p]; dup {
			return nil, configError(f.Path(), fmt.Errorf("duplicate path: %q and %q both resolve to %q", prev, f.Path(), p))
		}
		if p == manifestName || strings.HasPrefix(p, manifestName+"/") {
			return nil, configError(f.Path(), fmt.Errorf("path collides with manifest %q", manifestName))
		}
		seen[p] = f.Path()
		paths[i] = p
	}

	// A record may not sit where another record needs a directory.
	for _, p := range paths {
		for dir := parentOf(p); dir != ""; dir = parentOf(dir) {
			if owner, ok := seen[dir]; ok {
				return nil, configError(seen[p], fmt.Errorf("path needs %q as a directory, but %q is a file", dir, owner))
			}
		}
	}

	return paths, nil
}

// validateComponent checks a value that becomes a single path element.
func validateComponent(what, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s cannot be empty", what)
	case name == "." || name == "..":
		return fmt.Errorf("invalid %s %q", what, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%s %q must not contain path separators", what, name)
	}
	return nil
}

// parentOf returns the slash-separated parent of p, or "" at the top level.
func parentOf(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}
