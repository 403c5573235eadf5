package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dusk-indust/sourceit/internal/export"
	"github.com/dusk-indust/sourceit/internal/status"
)

// runList prints earlier extractions of this program under a root.
func (a *app) runList(ctx context.Context, s settings, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verify := fs.Bool("verify", false, "re-hash each extraction against its manifest")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := s.OutputDir
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}
	if root == "" {
		root = "."
	}

	opts := status.Options{
		Prefix:       s.Prefix,
		ProgramName:  s.ProgramName,
		ManifestName: s.ManifestName,
	}
	var (
		found []status.Extraction
		err   error
	)
	if *verify {
		found, err = status.Check(ctx, root, opts, s.VerifyConcurrency)
	} else {
		found, err = status.ListExtractions(root, opts)
	}
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if s.JSON {
		return export.Write(a.stdout, export.FromList(root, s.ProgramName, found))
	}

	if len(found) == 0 {
		fmt.Fprintf(a.stdout, "No extractions of %s found in %s.\n", s.ProgramName, root)
		fmt.Fprintln(a.stdout, "Run 'sourceit --source' to create one.")
		return nil
	}
	for _, ex := range found {
		fmt.Fprintf(a.stdout, "  %-48s %3d files  [%s]\n", ex.Name, ex.FileCount, ex.Verdict)
		for _, f := range ex.Failures {
			fmt.Fprintf(a.stdout, "      %s\n", f)
		}
	}
	return nil
}
