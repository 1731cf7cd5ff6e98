package mcp

import (
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers claim questions. Required.
	Query driving.QueryService

	// Upload validates and uploads policy PDFs. Optional; without it the
	// upload_document tool is not offered.
	Upload driving.UploadService

	// Document lists documents. Optional; without it list_documents and
	// the document resources are not offered.
	Document driving.DocumentService

	// Insights aggregates stored claims. Optional.
	Insights driving.InsightsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
