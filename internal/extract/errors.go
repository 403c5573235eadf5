package extract

import (
	"errors"
	"fmt"
)

// Kind classifies an extraction failure.
type Kind string

const (
	// KindConfig covers invalid requests: empty file list, duplicate or
	// escaping paths, bad program name. Reported before any I/O.
	KindConfig Kind = "config"
	// KindCollision means every candidate output directory name was taken.
	KindCollision Kind = "collision"
	// KindIO covers directory creation, file and manifest write failures.
	KindIO Kind = "io"
	// KindHash means a content digest could not be computed.
	KindHash Kind = "hash"
)

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrConfig    = errors.New("configuration error")
	ErrCollision = errors.New("output directory collision")
	ErrIO        = errors.New("i/o error")
	ErrHash      = errors.New("hash error")
)

// Phase names the step of an extraction that failed.
type Phase string

const (
	PhaseValidate      Phase = "validate"
	PhaseResolveRoot   Phase = "resolve root"
	PhaseCreateDir     Phase = "create directory"
	PhaseWriteFile     Phase = "write file"
	PhaseHash          Phase = "hash"
	PhaseWriteManifest Phase = "write manifest"
)

// Error is the structured failure returned by Extract. Path is the record's
// relative path for per-file phases and a filesystem path otherwise.
type Error struct {
	Kind  Kind
	Phase Phase
	Path  string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s error: %s %s: %v", e.Kind, e.Phase, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the Kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Kind == KindConfig
	case ErrCollision:
		return e.Kind == KindCollision
	case ErrIO:
		return e.Kind == KindIO
	case ErrHash:
		return e.Kind == KindHash
	}
	return false
}

func configError(path string, err error) error {
	return &Error{Kind: KindConfig, Phase: PhaseValidate, Path: path, Err: err}
}

func ioError(phase Phase, path string, err error) error {
	return &Error{Kind: KindIO, Phase: phase, Path: path, Err: err}
}
