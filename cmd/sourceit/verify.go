package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dusk-indust/sourceit/internal/export"
	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/manifest"
	"github.com/rs/zerolog"
)

// runVerify re-hashes an extraction against its manifest and, with
// -embedded, compares it with the files embedded in this binary.
func (a *app) runVerify(ctx context.Context, s settings, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	embedded := fs.Bool("embedded", false, "also compare file contents with the source embedded in this binary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: sourceit verify [-embedded] <dir>")
	}
	dir := fs.Arg(0)

	report, err := manifest.Verify(ctx, dir, manifest.Options{
		Name:        s.ManifestName,
		Concurrency: s.VerifyConcurrency,
	})
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	log.Debug().Str("manifest", report.Manifest).Int("files", len(report.Files)).Msg("Manifest checked")

	var mismatches []extract.Mismatch
	if *embedded {
		mismatches, err = extract.Compare(dir, a.files)
		if err != nil {
			return fmt.Errorf("compare with embedded source: %w", err)
		}
	}

	if s.JSON {
		if err := export.Write(a.stdout, export.FromReport(report)); err != nil {
			return err
		}
	} else {
		for _, f := range report.Files {
			fmt.Fprintf(a.stdout, "  %-8s %s\n", strings.ToUpper(string(f.Status)), f.Path)
		}
		for _, m := range mismatches {
			fmt.Fprintf(a.stdout, "  %-8s %s (%s)\n", "EMBEDDED", m.Path, m.Reason)
		}
	}

	failed := len(report.Failures())
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(report.Files))
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d files differ from the embedded source", len(mismatches))
	}
	if !s.JSON {
		fmt.Fprintf(a.stdout, "All %d files verified.\n", len(report.Files))
	}
	return nil
}
