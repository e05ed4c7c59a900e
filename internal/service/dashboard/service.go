package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/modal"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
	"golang.org/x/sync/errgroup"
)

const modalDetail = "today-detail"

type DashboardControllerImpl struct {
	dashboard.DashboardRepository
	publisher sse.Publisher
	modals    *modal.Stack

	mu          sync.Mutex
	summary     *dashboard.SummaryResponse
	today       *dashboard.TodayDetailsResponse
	fetch       viewstate.Scope
	detail      dashboard.Bucket
	detailModal *modal.Scope
}

// NewDashboardController builds the dashboard screen. publisher may be nil.
func NewDashboardController(repo dashboard.DashboardRepository, publisher sse.Publisher) dashboard.DashboardController {
	return &DashboardControllerImpl{
		DashboardRepository: repo,
		publisher:           publisher,
		modals:              modal.NewStack(),
	}
}

// Snapshot implements dashboard.DashboardController.
func (c *DashboardControllerImpl) Snapshot() dashboard.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := dashboard.Snapshot{
		Fetch:        c.fetch.State(),
		Detail:       c.detail,
		Modals:       c.modals.Names(),
		Focus:        c.modals.Focus(),
		ScrollLocked: c.modals.ScrollLocked(),
	}
	if c.summary != nil {
		summary := *c.summary
		snap.Summary = &summary
	}
	if c.today != nil {
		today := *c.today
		snap.Today = &today
	}
	return snap
}

func (c *DashboardControllerImpl) publish() {
	sse.Notify(c.publisher, sse.TopicDashboard, c.Snapshot())
}

// FetchAll loads summary and today details using parallel goroutines.
// A failure of either leaves the dashboard in a single error state.
func (c *DashboardControllerImpl) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	tok := c.fetch.Begin()
	c.mu.Unlock()
	c.publish()

	var (
		summary dashboard.SummaryResponse
		today   dashboard.TodayDetailsResponse
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary, err = c.GetSummary(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		today, err = c.GetTodayDetails(gctx)
		return err
	})

	err := g.Wait()

	c.mu.Lock()
	if err != nil {
		if c.fetch.Fail(tok, dashboard.MessageLoadFailed) {
			slog.Warn("Failed to load dashboard", "error", err)
		}
	} else if c.fetch.Succeed(tok) {
		c.summary = &summary
		c.today = &today
	}
	c.mu.Unlock()
	c.publish()

	return err
}

// OpenDetail implements dashboard.DashboardController.
func (c *DashboardControllerImpl) OpenDetail(bucket dashboard.Bucket) error {
	if !bucket.IsValid() {
		return dashboard.ErrInvalidBucket
	}

	c.mu.Lock()
	if c.today == nil {
		c.mu.Unlock()
		return dashboard.ErrSummaryNotReady
	}
	previous := c.detailModal
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	c.mu.Lock()
	scope := c.modals.Open(modalDetail, modal.WithFocus("close"), modal.WithDismiss(c.CloseDetail))
	scope.Defer(func() {
		c.mu.Lock()
		if c.detailModal == scope {
			c.detailModal = nil
			c.detail = ""
		}
		c.mu.Unlock()
	})
	c.detailModal = scope
	c.detail = bucket
	c.mu.Unlock()
	c.publish()

	return nil
}

// CloseDetail implements dashboard.DashboardController.
func (c *DashboardControllerImpl) CloseDetail() {
	c.mu.Lock()
	scope := c.detailModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
		c.publish()
	}
}

// Escape implements dashboard.DashboardController.
func (c *DashboardControllerImpl) Escape() bool {
	if !c.modals.Escape() {
		return false
	}
	c.publish()
	return true
}

// Close implements dashboard.DashboardController.
func (c *DashboardControllerImpl) Close() {
	c.modals.CloseAll()

	c.mu.Lock()
	c.fetch.Reset()
	c.mu.Unlock()
	c.publish()
}
