package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
)

const DashboardRefreshJob = "refresh_dashboard"

// RegisterDashboardRefresh keeps the dashboard snapshot current while the
// console runs. A non-positive interval disables the job.
func RegisterDashboardRefresh(scheduler *Scheduler, ctrl dashboard.DashboardController, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	return scheduler.AddJob(DashboardRefreshJob, interval, func(ctx context.Context) error {
		return ctrl.FetchAll(ctx)
	})
}
