package driven

import (
	"context"
	"encoding/json"
	"time"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// ClaimsBackend is the remote claims API. Every method validates the
// response against its schema and fails with a *domain.DecodeError on
// violations. Transport failures are *domain.ClientError.
type ClaimsBackend interface {
	// UploadFile sends a PDF and reports transfer progress (0-100).
	UploadFile(ctx context.Context, file domain.UploadFile, onProgress ProgressFunc) (*UploadReceipt, error)

	// QueryDocument asks a natural-language question.
	QueryDocument(ctx context.Context, query string) (*QueryAnswer, error)

	// ListDocuments returns every stored document.
	ListDocuments(ctx context.Context) ([]DocumentRecord, error)

	// GetDocument returns a single document.
	GetDocument(ctx context.Context, id string) (*DocumentRecord, error)

	// UpdateDocument applies a partial update. Callers refetch afterwards.
	UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) error

	// DeleteDocument removes a document. Callers refetch afterwards.
	DeleteDocument(ctx context.Context, id string) error

	// CreateQuery stores a query and its raw answer in history.
	CreateQuery(ctx context.Context, query NewQueryRecord) (*QueryRecord, error)

	// ListDocumentQueries returns the history of one document, newest first.
	ListDocumentQueries(ctx context.Context, documentID string) ([]QueryRecord, error)

	// ListQueries returns every stored query.
	ListQueries(ctx context.Context) ([]QueryRecord, error)

	// Report renders stored queries as JSON rows or a PDF.
	Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error)

	// Health probes the backend.
	Health(ctx context.Context) (*domain.HealthStatus, error)
}

// ProgressFunc receives upload transfer percentages.
type ProgressFunc func(percent int)

// DocumentRecord is a document as the backend stores it.
type DocumentRecord struct {
	ID          string
	Name        string
	FileSize    *int64
	Status      domain.DocumentStatus
	Summary     string
	UploadedAt  time.Time
	ProcessedAt *time.Time
}

// UploadReceipt is the backend's answer to an upload. Document is nil
// when the backend did not describe the stored document.
type UploadReceipt struct {
	Message  string
	Document *DocumentRecord
}

// QueryAnswer is the backend's decision for a question. Raw keeps the
// payload exactly as received so it can be stored verbatim.
type QueryAnswer struct {
	Decision         domain.Decision
	Amount           *float64
	Justification    string
	ReferenceClauses []string
	ReferenceDetails []domain.ReferenceDetail
	Raw              json.RawMessage
}

// NewQueryRecord is a query to persist.
type NewQueryRecord struct {
	DocumentID string
	QueryText  string
	Response   json.RawMessage
}

// QueryRecord is a persisted query.
type QueryRecord struct {
	ID               string
	DocumentID       string
	QueryText        string
	Decision         domain.Decision
	Amount           *float64
	Justification    string
	ReferenceClauses []string
	Timestamp        time.Time
}
