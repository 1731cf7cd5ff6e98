package services

import (
	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

// toDocument translates a backend document into the client shape.
// The backend does not expose file URLs.
func toDocument(rec driven.DocumentRecord) domain.Document {
	doc := domain.Document{
		ID:          rec.ID,
		Name:        rec.Name,
		Status:      rec.Status,
		Summary:     rec.Summary,
		UploadedAt:  rec.UploadedAt,
		ProcessedAt: rec.ProcessedAt,
	}
	if rec.FileSize != nil {
		doc.FileSize = *rec.FileSize
	}
	return doc
}

func toDocuments(recs []driven.DocumentRecord) []domain.Document {
	docs := make([]domain.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, toDocument(rec))
	}
	return docs
}

// claimAmount drops zero amounts, which the backend uses for "none".
func claimAmount(amount *float64) *float64 {
	if amount == nil || *amount == 0 {
		return nil
	}
	v := *amount
	return &v
}

func clauses(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// ephemeralResult builds the answer shown before it is saved.
func ephemeralResult(answer *driven.QueryAnswer, queryText, documentID string) domain.QueryResult {
	return domain.QueryResult{
		DocumentID:       documentID,
		QueryText:        queryText,
		Decision:         answer.Decision,
		ClaimAmount:      claimAmount(answer.Amount),
		Justification:    answer.Justification,
		PolicyClauses:    clauses(answer.ReferenceClauses),
		ReferenceDetails: answer.ReferenceDetails,
	}
}

// persistedResult translates a stored query record.
func persistedResult(rec driven.QueryRecord) domain.QueryResult {
	return domain.QueryResult{
		ID:            rec.ID,
		DocumentID:    rec.DocumentID,
		QueryText:     rec.QueryText,
		Decision:      rec.Decision,
		ClaimAmount:   claimAmount(rec.Amount),
		Justification: rec.Justification,
		PolicyClauses: clauses(rec.ReferenceClauses),
		CreatedAt:     rec.Timestamp,
	}
}
