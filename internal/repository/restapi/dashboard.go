package restapi

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
)

type dashboardRepositoryImpl struct {
	client *apiclient.Client
}

func NewDashboardRepository(client *apiclient.Client) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{client: client}
}

// GetSummary returns counts for the stat cards and department breakdown
func (r *dashboardRepositoryImpl) GetSummary(ctx context.Context) (dashboard.SummaryResponse, error) {
	var summary dashboard.SummaryResponse
	if err := r.client.Get(ctx, "/api/dashboard/summary", nil, &summary); err != nil {
		return dashboard.SummaryResponse{}, err
	}
	return summary, nil
}

// GetTodayDetails returns today's present, absent and unmarked employees
func (r *dashboardRepositoryImpl) GetTodayDetails(ctx context.Context) (dashboard.TodayDetailsResponse, error) {
	var details dashboard.TodayDetailsResponse
	if err := r.client.Get(ctx, "/api/dashboard/today-details", nil, &details); err != nil {
		return dashboard.TodayDetailsResponse{}, err
	}
	return details, nil
}
