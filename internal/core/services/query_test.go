package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claims-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
)

const rawAnswer = `{"decision":"approved","amount":"5000","justification":"Covered under 4.2","reference_clauses":["4.2"]}`

func approvedAnswer() *driven.QueryAnswer {
	return &driven.QueryAnswer{
		Decision:         domain.DecisionApproved,
		Amount:           ptr(5000.0),
		Justification:    "Covered under 4.2",
		ReferenceClauses: []string{"4.2"},
		ReferenceDetails: []domain.ReferenceDetail{{Label: "4.2", Snippet: "Hospitalisation is covered"}},
		Raw:              json.RawMessage(rawAnswer),
	}
}

func TestQueryService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		documentID string
		want       error
	}{
		{"blank query", "   ", "1", domain.ErrEmptyQuery},
		{"empty query", "", "1", domain.ErrEmptyQuery},
		{"no document", "Is surgery covered?", "", domain.ErrNoDocumentSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{}
			svc := NewQueryService(backend, memory.NewSessionStore())

			outcome, err := svc.Submit(context.Background(), tt.query, tt.documentID, nil)
			assert.Nil(t, outcome)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, backend.calls, "no network call before validation passes")
		})
	}
}

func TestQueryService_Submit_Success(t *testing.T) {
	store := memory.NewSessionStore()
	created := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	var order []string
	backend := &mockBackend{
		QueryDocumentFunc: func(_ context.Context, query string) (*driven.QueryAnswer, error) {
			assert.Equal(t, "Is hospitalization covered?", query)
			return approvedAnswer(), nil
		},
		CreateQueryFunc: func(_ context.Context, q driven.NewQueryRecord) (*driven.QueryRecord, error) {
			order = append(order, "save")
			assert.Equal(t, "12", q.DocumentID)
			assert.Equal(t, "Is hospitalization covered?", q.QueryText)
			assert.JSONEq(t, rawAnswer, string(q.Response))
			return &driven.QueryRecord{
				ID:               "99",
				DocumentID:       "12",
				QueryText:        q.QueryText,
				Decision:         domain.DecisionApproved,
				Amount:           ptr(5000.0),
				Justification:    "Covered under 4.2",
				ReferenceClauses: []string{"4.2"},
				Timestamp:        created,
			}, nil
		},
	}
	svc := NewQueryService(backend, store)

	var delivered domain.QueryResult
	outcome, err := svc.Submit(context.Background(), "Is hospitalization covered?", "12", func(r domain.QueryResult) {
		order = append(order, "result")
		delivered = r
	})
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, []string{"result", "save"}, order)
	assert.False(t, delivered.Persisted())
	assert.True(t, delivered.CreatedAt.IsZero())
	assert.Equal(t, domain.DecisionApproved, delivered.Decision)
	require.NotNil(t, delivered.ClaimAmount)
	assert.InDelta(t, 5000, *delivered.ClaimAmount, 1e-9)
	assert.Equal(t, []string{"4.2"}, delivered.PolicyClauses)
	assert.Len(t, delivered.ReferenceDetails, 1)

	assert.False(t, outcome.PartialSuccess())
	require.NotNil(t, outcome.Saved)
	assert.Equal(t, "99", outcome.Saved.ID)
	assert.Equal(t, created, outcome.Saved.CreatedAt)

	queries := store.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "99", queries[0].ID)

	assert.False(t, svc.Loading())
	assert.NoError(t, svc.Err())
	require.NotNil(t, svc.Result())
	assert.Equal(t, delivered.Justification, svc.Result().Justification)
}

func TestQueryService_Submit_SaveFailureIsPartialSuccess(t *testing.T) {
	store := memory.NewSessionStore()
	saveErr := &domain.ClientError{Kind: domain.KindNoResponse, Message: domain.MessageNoResponse}
	backend := &mockBackend{
		QueryDocumentFunc: func(context.Context, string) (*driven.QueryAnswer, error) {
			return approvedAnswer(), nil
		},
		CreateQueryFunc: func(context.Context, driven.NewQueryRecord) (*driven.QueryRecord, error) {
			return nil, saveErr
		},
	}
	svc := NewQueryService(backend, store)

	var delivered bool
	outcome, err := svc.Submit(context.Background(), "Is surgery covered?", "12", func(domain.QueryResult) {
		delivered = true
	})
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.True(t, outcome.PartialSuccess())
	assert.ErrorIs(t, outcome.SaveErr, saveErr)
	assert.Nil(t, outcome.Saved)
	assert.Equal(t, domain.DecisionApproved, outcome.Result.Decision)
	assert.Empty(t, store.Queries())
	assert.NoError(t, svc.Err())
	assert.NotNil(t, svc.Result())
}

func TestQueryService_Submit_QueryFailure(t *testing.T) {
	timeoutErr := &domain.ClientError{Kind: domain.KindTimeout, Message: domain.MessageTimeout}
	backend := &mockBackend{
		QueryDocumentFunc: func(context.Context, string) (*driven.QueryAnswer, error) {
			return nil, timeoutErr
		},
	}
	svc := NewQueryService(backend, memory.NewSessionStore())

	delivered := false
	outcome, err := svc.Submit(context.Background(), "Is surgery covered?", "12", func(domain.QueryResult) {
		delivered = true
	})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, timeoutErr)
	assert.False(t, delivered)
	assert.ErrorIs(t, svc.Err(), timeoutErr)
	assert.Nil(t, svc.Result())
	assert.False(t, svc.Loading())
	assert.Equal(t, []string{"QueryDocument"}, backend.calls)
}

func TestQueryService_Submit_AmountMapping(t *testing.T) {
	tests := []struct {
		name   string
		amount *float64
		want   *float64
	}{
		{"absent", nil, nil},
		{"zero", ptr(0.0), nil},
		{"positive", ptr(1250.5), ptr(1250.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{
				QueryDocumentFunc: func(context.Context, string) (*driven.QueryAnswer, error) {
					return &driven.QueryAnswer{Decision: domain.DecisionRejected, Amount: tt.amount}, nil
				},
				CreateQueryFunc: func(context.Context, driven.NewQueryRecord) (*driven.QueryRecord, error) {
					return nil, errors.New("offline")
				},
			}
			svc := NewQueryService(backend, memory.NewSessionStore())

			outcome, err := svc.Submit(context.Background(), "covered?", "1", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Result.ClaimAmount)
			assert.NotNil(t, outcome.Result.PolicyClauses)
			assert.Empty(t, outcome.Result.PolicyClauses)
		})
	}
}

func TestQueryService_Submit_CancelledSkipsSave(t *testing.T) {
	store := memory.NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())
	backend := &mockBackend{
		QueryDocumentFunc: func(context.Context, string) (*driven.QueryAnswer, error) {
			return approvedAnswer(), nil
		},
		CreateQueryFunc: func(context.Context, driven.NewQueryRecord) (*driven.QueryRecord, error) {
			cancel()
			return &driven.QueryRecord{ID: "1"}, nil
		},
	}
	svc := NewQueryService(backend, store)

	outcome, err := svc.Submit(ctx, "covered?", "1", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, outcome.SaveErr, context.Canceled)
	assert.Empty(t, store.Queries())
}

func TestQueryService_History(t *testing.T) {
	store := memory.NewSessionStore()
	store.AddQuery(domain.QueryResult{ID: "stale"})
	backend := &mockBackend{
		ListDocumentQueriesFunc: func(_ context.Context, documentID string) ([]driven.QueryRecord, error) {
			assert.Equal(t, "12", documentID)
			return []driven.QueryRecord{
				{ID: "2", DocumentID: "12", Decision: domain.DecisionRejected},
				{ID: "1", DocumentID: "12", Decision: domain.DecisionApproved, Amount: ptr(300.0)},
			}, nil
		},
	}
	svc := NewQueryService(backend, store)

	history, err := svc.History(context.Background(), "12")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2", history[0].ID)

	queries := store.Queries()
	require.Len(t, queries, 2)
	assert.Equal(t, "1", queries[1].ID)

	_, err = svc.History(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoDocumentSelected)
}

func TestQueryService_ClearAndSamples(t *testing.T) {
	backend := &mockBackend{
		QueryDocumentFunc: func(context.Context, string) (*driven.QueryAnswer, error) {
			return nil, errors.New("boom")
		},
	}
	svc := NewQueryService(backend, nil)
	_, _ = svc.Submit(context.Background(), "covered?", "1", nil)
	require.Error(t, svc.Err())

	svc.Clear()
	assert.NoError(t, svc.Err())
	assert.Nil(t, svc.Result())

	samples := svc.SampleQuestions()
	assert.Len(t, samples, 4)
	samples[0] = "changed"
	assert.Equal(t, "Is hospitalization covered under this policy?", svc.SampleQuestions()[0])
}
