package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/sourceit/internal/extract"
	"github.com/dusk-indust/sourceit/internal/manifest"
	"github.com/dusk-indust/sourceit/internal/status"
)

// ExtractionExport is the JSON document printed after a successful extraction.
type ExtractionExport struct {
	Program      string           `json:"program"`
	ExportedAt   string           `json:"exportedAt"`
	OutputDir    string           `json:"outputDir"`
	ManifestPath string           `json:"manifestPath"`
	FileCount    int              `json:"fileCount"`
	Files        []manifest.Entry `json:"files"`
}

// VerificationExport is the JSON document printed by verify.
type VerificationExport struct {
	Dir      string                `json:"dir"`
	Manifest string                `json:"manifest"`
	OK       bool                  `json:"ok"`
	Checked  int                   `json:"checked"`
	Failed   int                   `json:"failed"`
	Files    []manifest.FileResult `json:"files"`
}

// ListExport is the JSON document printed by list.
type ListExport struct {
	Root        string              `json:"root"`
	Program     string              `json:"program"`
	Extractions []status.Extraction `json:"extractions"`
}

// FromResult builds an ExtractionExport from an extraction result.
func FromResult(program string, res *extract.Result, now time.Time) *ExtractionExport {
	files := res.Entries
	if files == nil {
		files = []manifest.Entry{}
	}
	return &ExtractionExport{
		Program:      program,
		ExportedAt:   now.UTC().Format(time.RFC3339),
		OutputDir:    res.OutputDir,
		ManifestPath: res.ManifestPath,
		FileCount:    res.FileCount,
		Files:        files,
	}
}

// FromReport builds a VerificationExport from a verification report.
func FromReport(r *manifest.Report) *VerificationExport {
	files := r.Files
	if files == nil {
		files = []manifest.FileResult{}
	}
	return &VerificationExport{
		Dir:      r.Dir,
		Manifest: r.Manifest,
		OK:       r.OK(),
		Checked:  len(r.Files),
		Failed:   len(r.Failures()),
		Files:    files,
	}
}

// FromList builds a ListExport.
func FromList(root, program string, extractions []status.Extraction) *ListExport {
	if extractions == nil {
		extractions = []status.Extraction{}
	}
	return &ListExport{Root: root, Program: program, Extractions: extractions}
}

// Write encodes v as indented JSON followed by a newline.
func Write(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
