package driving

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// QueryService orchestrates claim questions against an uploaded document.
type QueryService interface {
	// Submit validates and sends a question. onResult, when not nil,
	// receives the answer before it is saved to history. Only a failure of
	// the question itself is returned as an error; save failures are
	// reported in the outcome.
	Submit(ctx context.Context, queryText, documentID string, onResult func(domain.QueryResult)) (*domain.QueryOutcome, error)

	// History loads the saved queries of a document into the session.
	History(ctx context.Context, documentID string) ([]domain.QueryResult, error)

	// Loading reports whether a question is in flight.
	Loading() bool

	// Err returns the last failure, or nil.
	Err() error

	// Result returns the last answer, or nil.
	Result() *domain.QueryResult

	// Clear forgets the last answer and failure.
	Clear()

	// SampleQuestions returns example questions to offer the user.
	SampleQuestions() []string
}
