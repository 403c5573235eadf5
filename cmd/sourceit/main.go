package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dusk-indust/sourceit"
	"github.com/dusk-indust/sourceit/internal/config"
	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/mcptools"
	"github.com/dusk-indust/sourceit/internal/sourced"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Source    bool
	OutputDir string
	ConfigDir string
	JSON      bool
	Verbose   bool
	ServeMCP  bool
	Version   bool
}

// version is set by goreleaser at build time.
var version = "dev"

// defaultProgramName names the output directory when sourceit.yml does not.
const defaultProgramName = "sourceit"

// errUsage is returned when no command was given.
var errUsage = errors.New("nothing to do; run with --source to extract the embedded source, or see --help")

// app bundles the collaborators run needs so tests can swap them.
type app struct {
	files  []sourced.File
	stdout io.Writer
	stderr io.Writer
	clock  extract.Clock
}

// settings is the merged view of sourceit.yml and command-line flags.
type settings struct {
	ProgramName       string
	OutputDir         string
	Prefix            string
	ManifestName      string
	JSON              bool
	Verbose           bool
	VerifyConcurrency int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		files:  sourceit.Files,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  extract.SystemClock{},
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("sourceit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.BoolVar(&flags.Source, "source", false, "extract the embedded source files and exit")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory to create the extraction in (default: cwd)")
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory containing sourceit.yml")
	fs.BoolVar(&flags.JSON, "json", false, "print results as JSON")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(a.stdout, version)
		return nil
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s := resolveSettings(flags, cfg)
	log := newLogger(a.stderr, s.Verbose)

	switch {
	case flags.ServeMCP:
		log.Debug().Int("files", len(a.files)).Msg("Serving MCP on stdio")
		svc := mcptools.NewSourceService(a.files, mcptools.Settings{
			ProgramName:       s.ProgramName,
			OutputDir:         s.OutputDir,
			Prefix:            s.Prefix,
			ManifestName:      s.ManifestName,
			VerifyConcurrency: s.VerifyConcurrency,
		})
		return mcptools.RunStdio(ctx, mcptools.NewSourceMCPServer(svc))
	case flags.Source:
		return a.runExtract(s, log)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	switch rest[0] {
	case "verify":
		return a.runVerify(ctx, s, log, rest[1:])
	case "list":
		return a.runList(ctx, s, rest[1:])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

// resolveSettings applies flags over the project config over defaults.
func resolveSettings(flags cliFlags, cfg *config.ProjectConfig) settings {
	s := settings{
		ProgramName:       cfg.ProgramName,
		OutputDir:         cfg.OutputDir,
		Prefix:            cfg.Prefix,
		ManifestName:      cfg.ManifestName,
		Verbose:           cfg.Verbose || flags.Verbose,
		JSON:              flags.JSON,
		VerifyConcurrency: cfg.VerifyConcurrency,
	}
	if s.ProgramName == "" {
		s.ProgramName = defaultProgramName
	}
	if flags.OutputDir != "" {
		s.OutputDir = flags.OutputDir
	}
	return s
}
