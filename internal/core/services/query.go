package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claims-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

var queryLog = logger.For("query")

var sampleQuestions = []string{
	"Is hospitalization covered under this policy?",
	"What is the claim process for dental treatment?",
	"Does the policy cover pre-existing conditions?",
	"What is the maximum claim amount allowed?",
}

// QueryService sends claim questions and saves the answers to history.
type QueryService struct {
	backend driven.ClaimsBackend
	store   driven.SessionStore

	mu      sync.RWMutex
	loading bool
	err     error
	result  *domain.QueryResult
}

// NewQueryService creates a new query service.
func NewQueryService(backend driven.ClaimsBackend, store driven.SessionStore) *QueryService {
	return &QueryService{
		backend: backend,
		store:   store,
	}
}

// Submit validates the question, asks the backend and saves the answer.
// The answer reaches onResult before the save starts, and a failed save
// never takes it back.
func (s *QueryService) Submit(
	ctx context.Context,
	queryText, documentID string,
	onResult func(domain.QueryResult),
) (*domain.QueryOutcome, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, s.fail(domain.ErrEmptyQuery)
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, s.fail(domain.ErrNoDocumentSelected)
	}
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}

	s.begin()
	defer s.finish()

	queryLog.Debug("asking %q about document %s", queryText, documentID)
	answer, err := s.backend.QueryDocument(ctx, queryText)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}

	result := ephemeralResult(answer, queryText, documentID)
	s.mu.Lock()
	s.result = &result
	s.mu.Unlock()
	if onResult != nil {
		onResult(result)
	}

	outcome := &domain.QueryOutcome{Result: result}
	saved, err := s.save(ctx, documentID, queryText, answer)
	if err != nil {
		queryLog.Warn("failed to save query to history: %v", err)
		outcome.SaveErr = err
		return outcome, nil
	}
	outcome.Saved = saved
	return outcome, nil
}

func (s *QueryService) save(
	ctx context.Context,
	documentID, queryText string,
	answer *driven.QueryAnswer,
) (*domain.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := s.backend.CreateQuery(ctx, driven.NewQueryRecord{
		DocumentID: documentID,
		QueryText:  queryText,
		Response:   answer.Raw,
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved := persistedResult(*rec)
	if s.store != nil {
		s.store.AddQuery(saved)
	}
	return &saved, nil
}

// History loads the saved queries of a document into the session.
func (s *QueryService) History(ctx context.Context, documentID string) ([]domain.QueryResult, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.ErrNoDocumentSelected
	}
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	recs, err := s.backend.ListDocumentQueries(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	history := make([]domain.QueryResult, 0, len(recs))
	for _, rec := range recs {
		history = append(history, persistedResult(rec))
	}
	if s.store != nil {
		s.store.SetQueries(history)
	}
	return history, nil
}

// Loading reports whether a question is in flight.
func (s *QueryService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last failure.
func (s *QueryService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Result returns a copy of the last answer.
func (s *QueryService) Result() *domain.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	r.PolicyClauses = slices.Clone(r.PolicyClauses)
	return &r
}

// Clear forgets the last answer and failure.
func (s *QueryService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.err = nil
}

// SampleQuestions returns example questions.
func (s *QueryService) SampleQuestions() []string {
	return slices.Clone(sampleQuestions)
}

func (s *QueryService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = nil
	s.result = nil
}

func (s *QueryService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *QueryService) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return err
}
