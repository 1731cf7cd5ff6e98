package driving

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// ProgressObserver receives upload progress snapshots.
type ProgressObserver func(domain.UploadProgress)

// UploadService orchestrates the upload of a policy document.
type UploadService interface {
	// Select validates a local file and resets progress for a new attempt.
	Select(path string) (*domain.UploadFile, error)

	// Upload sends the file and adds the resulting document to the session.
	// observe may be nil.
	Upload(ctx context.Context, file domain.UploadFile, observe ProgressObserver) (*domain.Document, error)

	// Progress returns the state of the current attempt.
	Progress() domain.UploadProgress

	// Reset returns progress to idle.
	Reset()
}
