package main

import (
	"errors"
	"fmt"

	"github.com/dusk-indust/sourceit/internal/export"
	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/rs/zerolog"
)

// runExtract writes the embedded source files to a new timestamped
// directory and reports where they went.
func (a *app) runExtract(s settings, log zerolog.Logger) error {
	e := &extract.Extractor{
		Prefix:       s.Prefix,
		ManifestName: s.ManifestName,
		Clock:        a.clock,
		OnProgress: func(ev extract.Event) {
			log.Debug().
				Str("event", string(ev.Kind)).
				Str("path", ev.Path).
				Int("bytes", ev.Bytes).
				Str("sha256", ev.Sum).
				Msg("Extraction progress")
		},
	}

	res, err := e.Extract(extract.Request{
		ProgramName:     s.ProgramName,
		DestinationRoot: s.OutputDir,
		Files:           a.files,
	})
	if err != nil {
		var xe *extract.Error
		if errors.As(err, &xe) {
			log.Debug().Str("kind", string(xe.Kind)).Str("phase", string(xe.Phase)).Str("path", xe.Path).Msg("Extraction failed")
		}
		return fmt.Errorf("failed to extract source: %w", err)
	}

	log.Info().Str("dir", res.OutputDir).Int("files", res.FileCount).Msg("Source extracted")

	if s.JSON {
		return export.Write(a.stdout, export.FromResult(s.ProgramName, res, a.clock.NowUTC()))
	}
	fmt.Fprintf(a.stdout, "Source extracted to: %s\n", res.OutputDir)
	fmt.Fprintf(a.stdout, "  %d files, checksums in %s\n", res.FileCount, res.ManifestPath)
	return nil
}
