// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Peta search. It lets AI assistants query the site's search index
// with the same ranking the site itself uses.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
