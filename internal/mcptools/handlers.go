package mcptools

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/manifest"
	"github.com/dusk-indust/sourceit/internal/sourced"
	"github.com/dusk-indust/sourceit/internal/status"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Settings carries the resolved configuration the tools run with.
type Settings struct {
	ProgramName       string
	OutputDir         string
	Prefix            string
	ManifestName      string
	VerifyConcurrency int
}

// SourceService handles MCP tool calls for the source server mode.
type SourceService struct {
	files []sourced.File
	cfg   Settings
	clock extract.Clock
}

// NewSourceService creates a SourceService serving the given embedded files.
func NewSourceService(files []sourced.File, cfg Settings) *SourceService {
	return &SourceService{
		files: files,
		cfg:   cfg,
		clock: extract.SystemClock{},
	}
}

// ExtractSource writes the embedded files to a fresh directory.
func (s *SourceService) ExtractSource(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractSourceInput,
) (*mcp.CallToolResult, ExtractSourceOutput, error) {
	root := input.OutputDir
	if root == "" {
		root = s.cfg.OutputDir
	}

	e := &extract.Extractor{
		Prefix:       s.cfg.Prefix,
		ManifestName: s.cfg.ManifestName,
		Clock:        s.clock,
	}
	res, err := e.Extract(extract.Request{
		ProgramName:     s.cfg.ProgramName,
		DestinationRoot: root,
		Files:           s.files,
	})
	if err != nil {
		return nil, ExtractSourceOutput{
			Status:  "failed",
			Message: err.Error(),
		}, nil
	}

	return nil, ExtractSourceOutput{
		OutputDir:    res.OutputDir,
		ManifestPath: res.ManifestPath,
		FileCount:    res.FileCount,
		Status:       "completed",
	}, nil
}

// VerifySource re-hashes an extraction against its manifest.
func (s *SourceService) VerifySource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifySourceInput,
) (*mcp.CallToolResult, VerifySourceOutput, error) {
	if input.Dir == "" {
		return nil, VerifySourceOutput{}, fmt.Errorf("dir is required")
	}

	report, err := manifest.Verify(ctx, input.Dir, manifest.Options{
		Name:        s.cfg.ManifestName,
		Concurrency: s.cfg.VerifyConcurrency,
	})
	if err != nil {
		return nil, VerifySourceOutput{}, fmt.Errorf("verify %s: %w", input.Dir, err)
	}

	return nil, VerifySourceOutput{
		Dir:      report.Dir,
		OK:       report.OK(),
		Checked:  len(report.Files),
		Failures: report.Failures(),
	}, nil
}

// ListExtractions reports earlier extractions of this program under a root.
func (s *SourceService) ListExtractions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListExtractionsInput,
) (*mcp.CallToolResult, ListExtractionsOutput, error) {
	root := input.Root
	if root == "" {
		root = s.cfg.OutputDir
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, ListExtractionsOutput{}, fmt.Errorf("resolve root: %w", err)
		}
		root = wd
	}

	opts := status.Options{
		Prefix:       s.cfg.Prefix,
		ProgramName:  s.cfg.ProgramName,
		ManifestName: s.cfg.ManifestName,
	}
	var (
		found []status.Extraction
		err   error
	)
	if input.Verify {
		found, err = status.Check(ctx, root, opts, s.cfg.VerifyConcurrency)
	} else {
		found, err = status.ListExtractions(root, opts)
	}
	if err != nil {
		return nil, ListExtractionsOutput{}, err
	}

	summaries := make([]ExtractionSummary, 0, len(found))
	for _, ex := range found {
		summaries = append(summaries, ExtractionSummary{
			Name:      ex.Name,
			Path:      ex.Path,
			CreatedAt: ex.CreatedAt.Format(time.RFC3339),
			FileCount: ex.FileCount,
			Verdict:   string(ex.Verdict),
			Failures:  ex.Failures,
		})
	}

	return nil, ListExtractionsOutput{
		Root:        root,
		Extractions: summaries,
	}, nil
}
