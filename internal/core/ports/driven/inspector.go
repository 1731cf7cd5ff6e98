package driven

import "github.com/custodia-labs/claims-cli/internal/core/domain"

// FileInspector validates a local file before upload.
type FileInspector interface {
	// Inspect returns the upload description of the file at path.
	// Non-PDF files fail with domain.ErrNotPDF and oversized files with
	// domain.ErrFileTooLarge.
	Inspect(path string) (*domain.UploadFile, error)
}
