// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the claims assistant. It lets AI assistants ask claim questions and
// manage policy documents through the same core services as the CLI.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
