package mcp

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	outcome *domain.QueryOutcome
	history []domain.QueryResult
	err     error

	gotText  string
	gotDocID string
}

func (m *mockQueryService) Submit(
	_ context.Context, text, docID string, _ func(domain.QueryResult),
) (*domain.QueryOutcome, error) {
	m.gotText, m.gotDocID = text, docID
	return m.outcome, m.err
}

func (m *mockQueryService) History(_ context.Context, _ string) ([]domain.QueryResult, error) {
	return m.history, m.err
}

func (m *mockQueryService) Loading() bool               { return false }
func (m *mockQueryService) Err() error                  { return m.err }
func (m *mockQueryService) Result() *domain.QueryResult { return nil }
func (m *mockQueryService) Clear()                      {}
func (m *mockQueryService) SampleQuestions() []string   { return nil }

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	doc       *domain.Document
	selectErr error
	uploadErr error
}

func (m *mockUploadService) Select(path string) (*domain.UploadFile, error) {
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	return &domain.UploadFile{Name: "policy.pdf", Path: path, Size: 100, Pages: 1}, nil
}

func (m *mockUploadService) Upload(
	_ context.Context, _ domain.UploadFile, _ driving.ProgressObserver,
) (*domain.Document, error) {
	return m.doc, m.uploadErr
}

func (m *mockUploadService) Progress() domain.UploadProgress { return domain.IdleProgress() }
func (m *mockUploadService) Reset()                          {}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	docs []domain.Document
	doc  *domain.Document
	err  error
}

func (m *mockDocumentService) Activate(_ context.Context) error { return m.err }
func (m *mockDocumentService) Refresh(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}
func (m *mockDocumentService) Documents() []domain.Document { return m.docs }
func (m *mockDocumentService) Filter(term string) []domain.Document {
	if term == "" {
		return m.docs
	}
	var out []domain.Document
	for _, d := range m.docs {
		if d.Name == term {
			out = append(out, d)
		}
	}
	return out
}
func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}
func (m *mockDocumentService) Update(_ context.Context, _ string, _ domain.DocumentPatch) error {
	return m.err
}
func (m *mockDocumentService) Reanalyze(_ context.Context, _ string) error { return m.err }
func (m *mockDocumentService) Delete(_ context.Context, _ string) error    { return m.err }
func (m *mockDocumentService) Select(_ string) (*domain.Document, error)   { return m.doc, m.err }
func (m *mockDocumentService) Current() *domain.Document                   { return m.doc }
func (m *mockDocumentService) Loading() bool                               { return false }
func (m *mockDocumentService) Err() error                                  { return m.err }

// mockInsightsService is a mock implementation of driving.InsightsService.
type mockInsightsService struct {
	analytics *domain.Analytics
	err       error
}

func (m *mockInsightsService) Analytics(_ context.Context) (*domain.Analytics, error) {
	return m.analytics, m.err
}

func (m *mockInsightsService) Report(_ context.Context, _ domain.ReportFormat) (*domain.Report, error) {
	return nil, m.err
}

func (m *mockInsightsService) Health(_ context.Context) (*domain.HealthStatus, error) {
	return &domain.HealthStatus{Status: "ok"}, m.err
}
