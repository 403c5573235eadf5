package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewSourceMCPServer creates an MCP server with the 3 source tools registered:
// extract_source, verify_source, and list_extractions.
func NewSourceMCPServer(svc *SourceService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sourceit",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_source",
		Description: "Write the source files embedded in this binary to a new timestamped directory with a SHA256SUMS manifest. Returns the directory and file count.",
	}, svc.ExtractSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify_source",
		Description: "Re-hash every file listed in an extraction's manifest and report missing or modified files.",
	}, svc.VerifySource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_extractions",
		Description: "List earlier source extractions of this program under a directory, optionally verifying each one.",
	}, svc.ListExtractions)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
