package extract

import "fmt"

// EventKind identifies an extraction milestone.
type EventKind string

const (
	EventDirCreated      EventKind = "dir_created"
	EventFileWritten     EventKind = "file_written"
	EventManifestWritten EventKind = "manifest_written"
)

// Event is delivered to Extractor.OnProgress as extraction advances. Path is
// the output directory for EventDirCreated and a relative path otherwise.
type Event struct {
	Kind  EventKind
	Path  string
	Sum   string
	Bytes int
}

// FormatEvent formats an Event as a human-readable status line.
func FormatEvent(ev Event) string {
	switch ev.Kind {
	case EventDirCreated:
		return fmt.Sprintf("  created %s", ev.Path)
	case EventFileWritten:
		return fmt.Sprintf("  ✓ %s (%d bytes)", ev.Path, ev.Bytes)
	case EventManifestWritten:
		return fmt.Sprintf("  ✓ %s", ev.Path)
	default:
		return fmt.Sprintf("  ? %s", ev.Path)
	}
}

// emit sends a progress event if a callback is registered.
func (e *Extractor) emit(ev Event) {
	if e.OnProgress != nil {
		e.OnProgress(ev)
	}
}
