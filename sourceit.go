// Package sourceit embeds the source of the sourceit command so that
// `sourceit --source` can write it back out. The embedded files are listed
// explicitly; add new files to both the go:embed directive and Paths.
package sourceit

import (
	"embed"

	"github.com/dusk-indust/sourceit/internal/sourced"
)

//go:embed go.mod README.md sourceit.go
//go:embed cmd/sourceit/main.go cmd/sourceit/extract.go cmd/sourceit/verify.go cmd/sourceit/list.go cmd/sourceit/log.go
//go:embed internal/sourced/sourced.go internal/sourced/path.go
//go:embed internal/extract/extract.go internal/extract/errors.go internal/extract/naming.go internal/extract/validate.go internal/extract/progress.go internal/extract/fs.go internal/extract/compare.go
//go:embed internal/manifest/manifest.go internal/manifest/verify.go
//go:embed internal/config/config.go internal/status/status.go internal/export/json.go
//go:embed internal/mcptools/server.go internal/mcptools/handlers.go internal/mcptools/types.go
var sourceFS embed.FS

// Paths is the ordered list of embedded files, relative to the module root.
var Paths = []string{
	"go.mod",
	"README.md",
	"sourceit.go",
	"cmd/sourceit/main.go",
	"cmd/sourceit/extract.go",
	"cmd/sourceit/verify.go",
	"cmd/sourceit/list.go",
	"cmd/sourceit/log.go",
	"internal/sourced/sourced.go",
	"internal/sourced/path.go",
	"internal/extract/extract.go",
	"internal/extract/errors.go",
	"internal/extract/naming.go",
	"internal/extract/validate.go",
	"internal/extract/progress.go",
	"internal/extract/fs.go",
	"internal/extract/compare.go",
	"internal/manifest/manifest.go",
	"internal/manifest/verify.go",
	"internal/config/config.go",
	"internal/status/status.go",
	"internal/export/json.go",
	"internal/mcptools/server.go",
	"internal/mcptools/handlers.go",
	"internal/mcptools/types.go",
}

// Files holds the embedded source records in Paths order.
var Files = sourced.MustFromFS(sourceFS, Paths...)
