package driving

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// DocumentService keeps the session's document list in sync with the backend.
type DocumentService interface {
	// Activate fetches the list on first use. Later calls do nothing.
	Activate(ctx context.Context) error

	// Refresh refetches the list and replaces the session copy.
	Refresh(ctx context.Context) ([]domain.Document, error)

	// Documents returns the session copy of the list.
	Documents() []domain.Document

	// Filter returns documents whose name contains term, ignoring case.
	Filter(term string) []domain.Document

	// Get fetches one document.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Update applies a patch and refetches the list.
	Update(ctx context.Context, id string, patch domain.DocumentPatch) error

	// Reanalyze marks a document for processing again.
	Reanalyze(ctx context.Context, id string) error

	// Delete removes a document and refetches the list.
	Delete(ctx context.Context, id string) error

	// Select makes a listed document the current one.
	Select(id string) (*domain.Document, error)

	// Current returns the current document, or nil.
	Current() *domain.Document

	// Loading reports whether a fetch is in flight.
	Loading() bool

	// Err returns the last failure, or nil.
	Err() error
}
