package services

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claims-cli/internal/core/ports/driving"
)

// Ensure InsightsService implements the interface.
var _ driving.InsightsService = (*InsightsService)(nil)

// InsightsService reports on stored claims.
type InsightsService struct {
	backend driven.ClaimsBackend
}

// NewInsightsService creates a new insights service.
func NewInsightsService(backend driven.ClaimsBackend) *InsightsService {
	return &InsightsService{backend: backend}
}

// Analytics counts stored queries by decision and sums their amounts.
// Queries without an amount count as zero.
func (s *InsightsService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	recs, err := s.backend.ListQueries(ctx)
	if err != nil {
		return nil, err
	}
	a := &domain.Analytics{TotalClaims: len(recs)}
	for _, rec := range recs {
		switch rec.Decision {
		case domain.DecisionApproved:
			a.ApprovedClaims++
		case domain.DecisionRejected:
			a.RejectedClaims++
		}
		if rec.Amount != nil {
			a.TotalAmount += *rec.Amount
		}
	}
	return a, nil
}

// Report renders stored queries.
func (s *InsightsService) Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := domain.ParseReportFormat(string(format)); err != nil {
		return nil, err
	}
	return s.backend.Report(ctx, format)
}

// Health probes the backend.
func (s *InsightsService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if s.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.backend.Health(ctx)
}
