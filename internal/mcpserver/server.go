// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemamap capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemamap"
)

const serverInstructions = `schemamap MCP server: compiles JSON Schema documents into mapper source, and generates JSON Schema or XML Schema (XSD) from the compiled types.

Configuration: All defaults are configurable via SCHEMAMAP_* environment variables set in your MCP client config.

Key settings:
- SCHEMAMAP_PACKAGE (default: models) - Go package name for generated mapper source
- SCHEMAMAP_PRETTY (default: true) - indent generated JSON Schema and XSD output
- SCHEMAMAP_MAX_INLINE_SIZE (default: 10MiB) - maximum size of inline or fetched documents
- SCHEMAMAP_MAX_SCHEMAS (default: 50) - maximum documents per call
- SCHEMAMAP_TYPE_LIMIT (default: 100) - default page size for compiled type listings
- SCHEMAMAP_CACHE_ENABLED (default: true) - cache compile results per session
- SCHEMAMAP_CACHE_TTL (default: 15m) - cache entry lifetime

Multiple schemas: the first document is the root; the others only supply $ref targets and are matched by their $id.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		resultCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemamap", Version: schemamap.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile one or more JSON Schema documents into a type graph and render Go mapper source for it. The first schema is the root. Returns the compiled types (paginated with offset/limit), non-fatal issues such as dropped defaults or renamed types, and the generated files. Set output_dir to write files to disk instead of returning their content inline.",
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "json_schema",
		Description: "Compile JSON Schema documents and regenerate a normalized JSON Schema (draft 2020-12) for the root type, with every object type under $defs. Output format is json or yaml.",
	}, handleJSONSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "xml_schema",
		Description: "Generate XML Schema (XSD) documents, one per XML namespace. Either compile JSON Schema documents (no namespaces), or pass a project file (YAML, inline) declaring mappers with XML namespaces and name the root mapper. Returns each file name, target namespace and content.",
	}, handleXMLSchema)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.TypeLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.TypeLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// boolOr returns *b, or fallback when b is nil.
func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
