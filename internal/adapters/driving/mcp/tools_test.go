package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the decision", func(t *testing.T) {
		amount := 75000.0
		result := domain.QueryResult{
			Decision:      domain.DecisionApproved,
			ClaimAmount:   &amount,
			Justification: "Covered under surgical benefits.",
			PolicyClauses: []string{"4.2"},
		}
		saved := result
		saved.ID = "q-9"
		query := &mockQueryService{outcome: &domain.QueryOutcome{Result: result, Saved: &saved}}

		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Question: "knee surgery", DocumentID: "3"})

		require.NoError(t, err)
		assert.Equal(t, "knee surgery", query.gotText)
		assert.Equal(t, "3", query.gotDocID)
		assert.Equal(t, domain.DecisionApproved, output.Decision)
		require.NotNil(t, output.ClaimAmount)
		assert.InDelta(t, 75000.0, *output.ClaimAmount, 0.001)
		assert.Equal(t, []string{"4.2"}, output.PolicyClauses)
		assert.Equal(t, "q-9", output.SavedID)
		assert.Empty(t, output.SaveError)
	})

	t.Run("reports a failed save without failing", func(t *testing.T) {
		query := &mockQueryService{outcome: &domain.QueryOutcome{
			Result:  domain.QueryResult{Decision: domain.DecisionNoMatch},
			SaveErr: errors.New("No response from server"),
		}}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Question: "q", DocumentID: "1"})

		require.NoError(t, err)
		assert.Equal(t, "No response from server", output.SaveError)
		assert.NotNil(t, output.PolicyClauses)
	})

	t.Run("returns validation errors", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{err: domain.ErrEmptyQuery}})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{})

		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})
}

func TestServer_handleUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and describes the document", func(t *testing.T) {
		upload := &mockUploadService{doc: &domain.Document{ID: "5", Name: "policy.pdf", Status: domain.DocumentCompleted, FileSize: 100}}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Upload: upload})
		require.NoError(t, err)

		_, output, err := server.handleUpload(ctx, nil, UploadInput{Path: "/tmp/policy.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "5", output.ID)
		assert.Equal(t, domain.DocumentCompleted, output.Status)
	})

	t.Run("rejects invalid files", func(t *testing.T) {
		upload := &mockUploadService{selectErr: domain.ErrNotPDF}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Upload: upload})
		require.NoError(t, err)

		_, _, err = server.handleUpload(ctx, nil, UploadInput{Path: "/tmp/notes.txt"})

		assert.ErrorIs(t, err, domain.ErrNotPDF)
	})

	t.Run("returns upload failures", func(t *testing.T) {
		upload := &mockUploadService{uploadErr: errors.New("boom")}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Upload: upload})
		require.NoError(t, err)

		_, _, err = server.handleUpload(ctx, nil, UploadInput{Path: "/tmp/policy.pdf"})

		assert.EqualError(t, err, "boom")
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()
	docs := []domain.Document{
		{ID: "1", Name: "health.pdf", Status: domain.DocumentCompleted},
		{ID: "2", Name: "motor.pdf", Status: domain.DocumentProcessing},
	}

	t.Run("lists documents", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: &mockDocumentService{docs: docs}})
		require.NoError(t, err)

		_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "health.pdf", output.Documents[0].Name)
	})

	t.Run("applies the filter", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: &mockDocumentService{docs: docs}})
		require.NoError(t, err)

		_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{Filter: "motor.pdf"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "2", output.Documents[0].ID)
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: &mockDocumentService{err: errors.New("down")}})
		require.NoError(t, err)

		_, _, err = server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		assert.EqualError(t, err, "down")
	})
}

func TestServer_handleStats(t *testing.T) {
	ctx := context.Background()

	insights := &mockInsightsService{analytics: &domain.Analytics{
		TotalClaims: 4, ApprovedClaims: 1, RejectedClaims: 3, TotalAmount: 20000,
	}}
	server, err := NewServer(&Ports{Query: &mockQueryService{}, Insights: insights})
	require.NoError(t, err)

	_, output, err := server.handleStats(ctx, nil, StatsInput{})

	require.NoError(t, err)
	assert.Equal(t, 4, output.TotalClaims)
	assert.InDelta(t, 0.25, output.ApprovalRate, 0.0001)
	assert.InDelta(t, 20000, output.TotalAmount, 0.001)
}
