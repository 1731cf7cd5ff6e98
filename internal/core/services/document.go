package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claims-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

var documentLog = logger.For("documents")

// DocumentService keeps the session's document list in sync with the
// backend. Mutations are never applied locally; the list is refetched.
type DocumentService struct {
	backend driven.ClaimsBackend
	store   driven.SessionStore

	mu        sync.RWMutex
	activated bool
	loading   bool
	err       error
}

// NewDocumentService creates a new document service.
func NewDocumentService(backend driven.ClaimsBackend, store driven.SessionStore) *DocumentService {
	return &DocumentService{
		backend: backend,
		store:   store,
	}
}

// Activate fetches the list the first time it is called.
// A cancelled first fetch leaves the service inactive.
func (s *DocumentService) Activate(ctx context.Context) error {
	s.mu.RLock()
	activated := s.activated
	s.mu.RUnlock()
	if activated {
		return nil
	}
	_, err := s.Refresh(ctx)
	if ctx.Err() == nil {
		s.mu.Lock()
		s.activated = true
		s.mu.Unlock()
	}
	return err
}

// Refresh refetches the list and replaces the session copy. On failure
// the previous list is kept and the error is recorded.
func (s *DocumentService) Refresh(ctx context.Context) ([]domain.Document, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	defer s.setLoading(false)

	recs, err := s.backend.ListDocuments(ctx)
	if err != nil {
		documentLog.Warn("failed to fetch documents: %v", err)
		return nil, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs := toDocuments(recs)
	if s.store != nil {
		s.store.SetDocuments(docs)
	}
	documentLog.Debug("fetched %d documents", len(docs))
	return docs, nil
}

// Documents returns the session copy of the list.
func (s *DocumentService) Documents() []domain.Document {
	if s.store == nil {
		return nil
	}
	return s.store.Documents()
}

// Filter returns documents whose name contains term, ignoring case.
func (s *DocumentService) Filter(term string) []domain.Document {
	docs := s.Documents()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return docs
	}
	var matched []domain.Document
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Name), term) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// Get fetches one document from the backend.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	rec, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := toDocument(*rec)
	return &doc, nil
}

// Update applies a patch and refetches the list.
func (s *DocumentService) Update(ctx context.Context, id string, patch domain.DocumentPatch) error {
	if s.backend == nil {
		return domain.ErrNotImplemented
	}
	if patch.IsEmpty() {
		return &domain.ValidationError{Field: "patch", Message: "nothing to update"}
	}
	if err := s.backend.UpdateDocument(ctx, id, patch); err != nil {
		return s.fail(err)
	}
	s.refetch(ctx)
	return nil
}

// Reanalyze marks a document for processing again.
func (s *DocumentService) Reanalyze(ctx context.Context, id string) error {
	status := domain.DocumentProcessing
	return s.Update(ctx, id, domain.DocumentPatch{Status: &status})
}

// Delete removes a document and refetches the list. A deleted current
// document is deselected.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if s.backend == nil {
		return domain.ErrNotImplemented
	}
	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return s.fail(err)
	}
	if s.store != nil && ctx.Err() == nil {
		if current := s.store.CurrentDocument(); current != nil && current.ID == id {
			s.store.SetCurrentDocument(nil)
		}
	}
	s.refetch(ctx)
	return nil
}

// Select makes a listed document the current one.
func (s *DocumentService) Select(id string) (*domain.Document, error) {
	for _, doc := range s.Documents() {
		if doc.ID == id {
			s.store.SetCurrentDocument(&doc)
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Current returns the current document.
func (s *DocumentService) Current() *domain.Document {
	if s.store == nil {
		return nil
	}
	return s.store.CurrentDocument()
}

// Loading reports whether a fetch is in flight.
func (s *DocumentService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last failure.
func (s *DocumentService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// refetch reloads the list after a mutation. Its failure is recorded in
// Err but does not fail the mutation, which already happened.
func (s *DocumentService) refetch(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		documentLog.Debug("refetch after mutation failed: %v", err)
	}
}

func (s *DocumentService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *DocumentService) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return err
}
