package driving

import (
	"context"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// InsightsService reports on stored claims and backend health.
type InsightsService interface {
	// Analytics aggregates every stored query.
	Analytics(ctx context.Context) (*domain.Analytics, error)

	// Report renders stored queries in the given format.
	Report(ctx context.Context, format domain.ReportFormat) (*domain.Report, error)

	// Health probes the backend.
	Health(ctx context.Context) (*domain.HealthStatus, error)
}
