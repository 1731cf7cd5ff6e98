package memory

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// It lives for one process and is never persisted.
type SessionStore struct {
	mu        sync.RWMutex
	id        string
	closed    bool
	documents []domain.Document
	queries   []domain.QueryResult
	current   *domain.Document
}

// NewSessionStore creates an empty session with a random ID.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		id:        uuid.NewString(),
		documents: []domain.Document{},
		queries:   []domain.QueryResult{},
	}
}

// ID returns the session identifier.
func (s *SessionStore) ID() string {
	return s.id
}

// Documents returns a copy of the document list.
func (s *SessionStore) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, len(s.documents))
	for i, doc := range s.documents {
		out[i] = copyDocument(doc)
	}
	return out
}

// SetDocuments replaces the document list.
func (s *SessionStore) SetDocuments(docs []domain.Document) {
	list := make([]domain.Document, len(docs))
	for i, doc := range docs {
		list[i] = copyDocument(doc)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.documents = list
}

// AddDocument prepends a document.
func (s *SessionStore) AddDocument(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.documents = slices.Insert(slices.Clone(s.documents), 0, copyDocument(doc))
}

// Queries returns a copy of the query history.
func (s *SessionStore) Queries() []domain.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QueryResult, len(s.queries))
	for i, q := range s.queries {
		out[i] = copyQuery(q)
	}
	return out
}

// SetQueries replaces the query history.
func (s *SessionStore) SetQueries(queries []domain.QueryResult) {
	list := make([]domain.QueryResult, len(queries))
	for i, q := range queries {
		list[i] = copyQuery(q)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queries = list
}

// AddQuery prepends a query.
func (s *SessionStore) AddQuery(query domain.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queries = slices.Insert(slices.Clone(s.queries), 0, copyQuery(query))
}

// CurrentDocument returns a copy of the selected document, or nil.
func (s *SessionStore) CurrentDocument() *domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	doc := copyDocument(*s.current)
	return &doc
}

// SetCurrentDocument selects a document.
func (s *SessionStore) SetCurrentDocument(doc *domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if doc == nil {
		s.current = nil
		return
	}
	current := copyDocument(*doc)
	s.current = &current
}

// Close ends the session. Reads keep returning the last state.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func copyDocument(doc domain.Document) domain.Document {
	if doc.ProcessedAt != nil {
		processed := *doc.ProcessedAt
		doc.ProcessedAt = &processed
	}
	return doc
}

func copyQuery(q domain.QueryResult) domain.QueryResult {
	if q.ClaimAmount != nil {
		amount := *q.ClaimAmount
		q.ClaimAmount = &amount
	}
	q.PolicyClauses = slices.Clone(q.PolicyClauses)
	q.ReferenceDetails = slices.Clone(q.ReferenceDetails)
	return q
}
