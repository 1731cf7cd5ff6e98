package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// mockUploadService implements driving.UploadService for CLI tests.
type mockUploadService struct {
	SelectFunc func(path string) (*domain.UploadFile, error)
	UploadFunc func(ctx context.Context, file domain.UploadFile, observe driving.ProgressObserver) (*domain.Document, error)
}

func (m *mockUploadService) Select(path string) (*domain.UploadFile, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(path)
	}
	return &domain.UploadFile{Name: "policy.pdf", Path: path, Size: 2048, Pages: 4}, nil
}

func (m *mockUploadService) Upload(
	ctx context.Context, file domain.UploadFile, observe driving.ProgressObserver,
) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file, observe)
	}
	if observe != nil {
		observe(domain.UploadProgress{Status: domain.UploadUploading, Progress: 50})
		observe(domain.UploadProgress{Status: domain.UploadSuccess, Progress: 100, Message: domain.MessageUploadComplete})
	}
	return &domain.Document{ID: "11", Name: file.Name, FileSize: file.Size, Status: domain.DocumentCompleted}, nil
}

func (m *mockUploadService) Progress() domain.UploadProgress { return domain.IdleProgress() }
func (m *mockUploadService) Reset()                          {}

// mockQueryService implements driving.QueryService for CLI tests.
type mockQueryService struct {
	SubmitFunc  func(ctx context.Context, text, docID string, onResult func(domain.QueryResult)) (*domain.QueryOutcome, error)
	HistoryFunc func(ctx context.Context, docID string) ([]domain.QueryResult, error)
	samples     []string
}

func (m *mockQueryService) Submit(
	ctx context.Context, text, docID string, onResult func(domain.QueryResult),
) (*domain.QueryOutcome, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, text, docID, onResult)
	}
	amount := 1500.0
	result := domain.QueryResult{
		DocumentID:    docID,
		QueryText:     text,
		Decision:      domain.DecisionApproved,
		ClaimAmount:   &amount,
		Justification: "Covered after the waiting period.",
		PolicyClauses: []string{"Clause 3.1"},
	}
	if onResult != nil {
		onResult(result)
	}
	saved := result
	saved.ID = "q-1"
	return &domain.QueryOutcome{Result: result, Saved: &saved}, nil
}

func (m *mockQueryService) History(ctx context.Context, docID string) ([]domain.QueryResult, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, docID)
	}
	return nil, nil
}

func (m *mockQueryService) Loading() bool               { return false }
func (m *mockQueryService) Err() error                  { return nil }
func (m *mockQueryService) Result() *domain.QueryResult { return nil }
func (m *mockQueryService) Clear()                      {}
func (m *mockQueryService) SampleQuestions() []string   { return m.samples }

// mockDocumentService implements driving.DocumentService for CLI tests.
type mockDocumentService struct {
	RefreshFunc   func(ctx context.Context) ([]domain.Document, error)
	GetFunc       func(ctx context.Context, id string) (*domain.Document, error)
	UpdateFunc    func(ctx context.Context, id string, patch domain.DocumentPatch) error
	ReanalyzeFunc func(ctx context.Context, id string) error
	DeleteFunc    func(ctx context.Context, id string) error
	docs          []domain.Document
}

func (m *mockDocumentService) Activate(context.Context) error { return nil }

func (m *mockDocumentService) Refresh(ctx context.Context) ([]domain.Document, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return m.docs, nil
}

func (m *mockDocumentService) Documents() []domain.Document { return m.docs }

func (m *mockDocumentService) Filter(term string) []domain.Document {
	if term == "" {
		return m.docs
	}
	var out []domain.Document
	for _, d := range m.docs {
		if bytes.Contains([]byte(d.Name), []byte(term)) {
			out = append(out, d)
		}
	}
	return out
}

func (m *mockDocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Update(ctx context.Context, id string, patch domain.DocumentPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockDocumentService) Reanalyze(ctx context.Context, id string) error {
	if m.ReanalyzeFunc != nil {
		return m.ReanalyzeFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentService) Select(id string) (*domain.Document, error) {
	return m.Get(context.Background(), id)
}

func (m *mockDocumentService) Current() *domain.Document { return nil }
func (m *mockDocumentService) Loading() bool             { return false }
func (m *mockDocumentService) Err() error                { return nil }

// mockInsightsService implements driving.InsightsService for CLI tests.
type mockInsightsService struct {
	AnalyticsFunc func(ctx context.Context) (*domain.Analytics, error)
	ReportFunc    func(ctx context.Context, format domain.ReportFormat) (*domain.Report, error)
	HealthFunc    func(ctx context.Context) (*domain.HealthStatus, error)
}

func (m *mockInsightsService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	if m.AnalyticsFunc != nil {
		return m.AnalyticsFunc(ctx)
	}
	return &domain.Analytics{TotalClaims: 2, ApprovedClaims: 1, RejectedClaims: 1, TotalAmount: 2500}, nil
}

func (m *mockInsightsService) Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error) {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, format)
	}
	return &domain.Report{Format: format}, nil
}

func (m *mockInsightsService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.HealthStatus{Status: "healthy"}, nil
}

// mockSettingsStore implements driven.SettingsStore for CLI tests.
type mockSettingsStore struct {
	settings domain.ClientSettings
	path     string
	saved    []domain.ClientSettings
	saveErr  error
}

func (m *mockSettingsStore) Settings() domain.ClientSettings { return m.settings }

func (m *mockSettingsStore) Save(s domain.ClientSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, s)
	m.settings = s
	return nil
}

func (m *mockSettingsStore) Path() string { return m.path }

// mockWatcher implements driven.DirectoryWatcher. It emits paths and
// then closes the channel.
type mockWatcher struct {
	paths  []string
	err    error
	closed bool
}

func (m *mockWatcher) Watch(context.Context) (<-chan string, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan string, len(m.paths))
	for _, p := range m.paths {
		ch <- p
	}
	close(ch)
	return ch, nil
}

func (m *mockWatcher) Close() error {
	m.closed = true
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	upload   *mockUploadService
	query    *mockQueryService
	document *mockDocumentService
	insights *mockInsightsService
	settings *mockSettingsStore
	watcher  *mockWatcher
}

// setupTestServices installs fresh mocks and restores the previous
// services when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	prev := Services{
		Upload:   uploadService,
		Query:    queryService,
		Document: documentService,
		Insights: insightsService,
		Settings: settingsStore,
		Metrics:  metricsHandler,
		Watcher:  newWatcher,
	}
	t.Cleanup(func() { SetServices(&prev) })

	ts := &testServices{
		upload:   &mockUploadService{},
		query:    &mockQueryService{},
		document: &mockDocumentService{},
		insights: &mockInsightsService{},
		settings: &mockSettingsStore{settings: domain.DefaultClientSettings(), path: "/home/user/.claims/config.toml"},
		watcher:  &mockWatcher{},
	}
	SetServices(&Services{
		Upload:   ts.upload,
		Query:    ts.query,
		Document: ts.document,
		Insights: ts.insights,
		Settings: ts.settings,
		Metrics:  http.NotFoundHandler(),
		Watcher:  func(string) driven.DirectoryWatcher { return ts.watcher },
	})
	return ts
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests do not leak
// values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
