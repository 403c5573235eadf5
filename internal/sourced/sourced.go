// Package sourced holds the in-memory records of files embedded into a
// binary. A record carries a relative, slash-separated path and the complete
// text of the file; it has no filesystem dependency of its own.
package sourced

import (
	"fmt"
	"io/fs"
)

// File is one embedded source file. The zero value is an empty record with
// no path. Files are compared by value.
type File struct {
	path    string
	content string
}

// New creates a File from a relative path and its full content.
func New(path, content string) File {
	return File{path: path, content: content}
}

// Path returns the relative path the file was declared with (e.g. "cmd/app/main.go").
func (f File) Path() string { return f.path }

// Content returns the full text of the file.
func (f File) Content() string { return f.content }

// String implements fmt.Stringer for log output.
func (f File) String() string {
	return fmt.Sprintf("%s (%d bytes)", f.path, len(f.content))
}

// FromFS reads the listed paths out of fsys, in order, and returns one File
// per path. It is meant for an embed.FS populated with //go:embed: the list
// of paths stays explicit, nothing is walked.
func FromFS(fsys fs.FS, paths ...string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", p, err)
		}
		files = append(files, New(p, string(data)))
	}
	return files, nil
}

// MustFromFS is like FromFS but panics on error. Use it for package-level
// variables backed by an embed.FS, where a missing path is a build mistake.
func MustFromFS(fsys fs.FS, paths ...string) []File {
	files, err := FromFS(fsys, paths...)
	if err != nil {
		panic(err)
	}
	return files
}
