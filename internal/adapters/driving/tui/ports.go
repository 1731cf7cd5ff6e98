// Package tui provides an interactive terminal user interface for the
// claims assistant. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Upload validates and uploads policy PDFs.
	Upload driving.UploadService

	// Query answers claim questions.
	Query driving.QueryService

	// Document manages uploaded documents and the current selection.
	Document driving.DocumentService

	// Insights reports claim statistics. Optional; the stats view shows an
	// error without it.
	Insights driving.InsightsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	upload driving.UploadService,
	query driving.QueryService,
	document driving.DocumentService,
) *Ports {
	return &Ports{
		Upload:   upload,
		Query:    query,
		Document: document,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
