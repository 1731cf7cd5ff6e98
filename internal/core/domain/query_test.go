package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in      string
		want    Decision
		valid   bool
		verdict bool
	}{
		{"approved", DecisionApproved, true, true},
		{"Rejected", DecisionRejected, true, true},
		{" no_data ", DecisionNoData, true, false},
		{"no_match", DecisionNoMatch, true, false},
		{"error", DecisionError, true, false},
		{"maybe", "maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecision(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.verdict, got.IsVerdict())
		})
	}
}

func TestQueryResult_Persisted(t *testing.T) {
	assert.False(t, QueryResult{QueryText: "covered?"}.Persisted())
	assert.True(t, QueryResult{ID: "12", CreatedAt: time.Now()}.Persisted())
}

func TestQueryOutcome_PartialSuccess(t *testing.T) {
	assert.False(t, QueryOutcome{}.PartialSuccess())
	assert.True(t, QueryOutcome{SaveErr: errors.New("save failed")}.PartialSuccess())
}

func TestAnalytics_ApprovalRate(t *testing.T) {
	assert.Zero(t, Analytics{}.ApprovalRate())
	assert.InDelta(t, 0.75, Analytics{TotalClaims: 4, ApprovedClaims: 3}.ApprovalRate(), 1e-9)
}

func TestParseReportFormat(t *testing.T) {
	f, err := ParseReportFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, ReportPDF, f)

	_, err = ParseReportFormat("csv")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHealthStatus_Healthy(t *testing.T) {
	assert.True(t, HealthStatus{Status: "healthy"}.Healthy())
	assert.True(t, HealthStatus{Status: "OK"}.Healthy())
	assert.False(t, HealthStatus{Status: "degraded"}.Healthy())
}
