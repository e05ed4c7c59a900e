package dashboard

import (
	"context"
)

// DashboardRepository defines the remote dashboard endpoints
type DashboardRepository interface {
	// GetSummary returns the roster and today's attendance counts
	GetSummary(ctx context.Context) (SummaryResponse, error)

	// GetTodayDetails returns today's employees grouped by attendance bucket
	GetTodayDetails(ctx context.Context) (TodayDetailsResponse, error)
}
