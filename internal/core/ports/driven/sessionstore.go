package driven

import "github.com/custodia-labs/claims-cli/internal/core/domain"

// SessionStore holds the client-side state of one session: the document
// list, the query history and the current document. Every setter is an
// atomic replacement and every getter returns a copy.
type SessionStore interface {
	// ID identifies the session.
	ID() string

	// Documents returns the document list, newest first.
	Documents() []domain.Document

	// SetDocuments replaces the document list.
	SetDocuments(docs []domain.Document)

	// AddDocument prepends a document. IDs are not deduplicated.
	AddDocument(doc domain.Document)

	// Queries returns the query history, newest first.
	Queries() []domain.QueryResult

	// SetQueries replaces the query history.
	SetQueries(queries []domain.QueryResult)

	// AddQuery prepends a query.
	AddQuery(query domain.QueryResult)

	// CurrentDocument returns the selected document, or nil.
	CurrentDocument() *domain.Document

	// SetCurrentDocument selects a document. Nil clears the selection.
	SetCurrentDocument(doc *domain.Document)

	// Close releases the session. Later writes are ignored.
	Close() error
}
