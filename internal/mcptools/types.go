package mcptools

import "github.com/dusk-indust/sourceit/internal/manifest"

// --- MCP tool types for the source server mode (--serve-mcp) ---
// These tools let an MCP client pull the binary's embedded source, check an
// extraction and list earlier ones without shelling out.

// ExtractSourceInput is the input for the extract_source MCP tool.
type ExtractSourceInput struct {
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory to create the extraction in (default: configured output dir or cwd)"`
}

// ExtractSourceOutput is the result of the extract_source MCP tool.
type ExtractSourceOutput struct {
	OutputDir    string `json:"outputDir,omitempty"`
	ManifestPath string `json:"manifestPath,omitempty"`
	FileCount    int    `json:"fileCount"`
	Status       string `json:"status"` // "completed" or "failed"
	Message      string `json:"message,omitempty"`
}

// VerifySourceInput is the input for the verify_source MCP tool.
type VerifySourceInput struct {
	Dir string `json:"dir" jsonschema:"extraction directory containing the checksum manifest"`
}

// VerifySourceOutput is the result of the verify_source MCP tool.
type VerifySourceOutput struct {
	Dir      string                `json:"dir"`
	OK       bool                  `json:"ok"`
	Checked  int                   `json:"checked"`
	Failures []manifest.FileResult `json:"failures,omitempty"`
}

// ListExtractionsInput is the input for the list_extractions MCP tool.
type ListExtractionsInput struct {
	Root   string `json:"root,omitempty" jsonschema:"directory to scan (default: configured output dir or cwd)"`
	Verify bool   `json:"verify,omitempty" jsonschema:"re-hash every extraction against its manifest"`
}

// ListExtractionsOutput is the result of the list_extractions MCP tool.
type ListExtractionsOutput struct {
	Root        string              `json:"root"`
	Extractions []ExtractionSummary `json:"extractions"`
}

// ExtractionSummary is a brief overview of one extraction directory.
type ExtractionSummary struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	CreatedAt string   `json:"createdAt"`
	FileCount int      `json:"fileCount"`
	Verdict   string   `json:"verdict"`
	Failures  []string `json:"failures,omitempty"`
}
