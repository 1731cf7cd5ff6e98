package services

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// mockBackend implements driven.ClaimsBackend with overridable functions.
// Unset functions return domain.ErrNotImplemented.
type mockBackend struct {
	UploadFileFunc          func(ctx context.Context, file domain.UploadFile, onProgress driven.ProgressFunc) (*driven.UploadReceipt, error)
	QueryDocumentFunc       func(ctx context.Context, query string) (*driven.QueryAnswer, error)
	ListDocumentsFunc       func(ctx context.Context) ([]driven.DocumentRecord, error)
	GetDocumentFunc         func(ctx context.Context, id string) (*driven.DocumentRecord, error)
	UpdateDocumentFunc      func(ctx context.Context, id string, patch domain.DocumentPatch) error
	DeleteDocumentFunc      func(ctx context.Context, id string) error
	CreateQueryFunc         func(ctx context.Context, query driven.NewQueryRecord) (*driven.QueryRecord, error)
	ListDocumentQueriesFunc func(ctx context.Context, documentID string) ([]driven.QueryRecord, error)
	ListQueriesFunc         func(ctx context.Context) ([]driven.QueryRecord, error)
	ReportFunc              func(ctx context.Context, format domain.ReportFormat) (*domain.Report, error)
	HealthFunc              func(ctx context.Context) (*domain.HealthStatus, error)

	calls []string
}

var _ driven.ClaimsBackend = (*mockBackend)(nil)

func (m *mockBackend) UploadFile(ctx context.Context, file domain.UploadFile, onProgress driven.ProgressFunc) (*driven.UploadReceipt, error) {
	m.calls = append(m.calls, "UploadFile")
	if m.UploadFileFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.UploadFileFunc(ctx, file, onProgress)
}

func (m *mockBackend) QueryDocument(ctx context.Context, query string) (*driven.QueryAnswer, error) {
	m.calls = append(m.calls, "QueryDocument")
	if m.QueryDocumentFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.QueryDocumentFunc(ctx, query)
}

func (m *mockBackend) ListDocuments(ctx context.Context) ([]driven.DocumentRecord, error) {
	m.calls = append(m.calls, "ListDocuments")
	if m.ListDocumentsFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.ListDocumentsFunc(ctx)
}

func (m *mockBackend) GetDocument(ctx context.Context, id string) (*driven.DocumentRecord, error) {
	m.calls = append(m.calls, "GetDocument")
	if m.GetDocumentFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.GetDocumentFunc(ctx, id)
}

func (m *mockBackend) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) error {
	m.calls = append(m.calls, "UpdateDocument")
	if m.UpdateDocumentFunc == nil {
		return domain.ErrNotImplemented
	}
	return m.UpdateDocumentFunc(ctx, id, patch)
}

func (m *mockBackend) DeleteDocument(ctx context.Context, id string) error {
	m.calls = append(m.calls, "DeleteDocument")
	if m.DeleteDocumentFunc == nil {
		return domain.ErrNotImplemented
	}
	return m.DeleteDocumentFunc(ctx, id)
}

func (m *mockBackend) CreateQuery(ctx context.Context, query driven.NewQueryRecord) (*driven.QueryRecord, error) {
	m.calls = append(m.calls, "CreateQuery")
	if m.CreateQueryFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.CreateQueryFunc(ctx, query)
}

func (m *mockBackend) ListDocumentQueries(ctx context.Context, documentID string) ([]driven.QueryRecord, error) {
	m.calls = append(m.calls, "ListDocumentQueries")
	if m.ListDocumentQueriesFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.ListDocumentQueriesFunc(ctx, documentID)
}

func (m *mockBackend) ListQueries(ctx context.Context) ([]driven.QueryRecord, error) {
	m.calls = append(m.calls, "ListQueries")
	if m.ListQueriesFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.ListQueriesFunc(ctx)
}

func (m *mockBackend) Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error) {
	m.calls = append(m.calls, "Report")
	if m.ReportFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.ReportFunc(ctx, format)
}

func (m *mockBackend) Health(ctx context.Context) (*domain.HealthStatus, error) {
	m.calls = append(m.calls, "Health")
	if m.HealthFunc == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.HealthFunc(ctx)
}

// mockInspector implements driven.FileInspector.
type mockInspector struct {
	InspectFunc func(path string) (*domain.UploadFile, error)
}

func (m *mockInspector) Inspect(path string) (*domain.UploadFile, error) {
	return m.InspectFunc(path)
}

func ptr[T any](v T) *T {
	return &v
}
