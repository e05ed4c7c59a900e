package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
)

type countingDashboard struct {
	dashboard.DashboardController
	fetches atomic.Int32
}

func (c *countingDashboard) FetchAll(ctx context.Context) error {
	c.fetches.Add(1)
	return nil
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s := NewScheduler(context.Background())
	assert.ErrorIs(t, s.AddJob("bad", 0, func(context.Context) error { return nil }), ErrInvalidInterval)
}

func TestScheduler_SkipsOverlappingRun(t *testing.T) {
	s := NewScheduler(context.Background())
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	var runs atomic.Int32
	require.NoError(t, s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		entered <- struct{}{}
		<-release
		return errors.New("done")
	}))

	go s.RunOnce(context.Background())
	<-entered
	s.RunOnce(context.Background())
	close(release)

	assert.Equal(t, int32(1), runs.Load())
}

func TestRegisterDashboardRefresh(t *testing.T) {
	ctrl := &countingDashboard{}

	s := NewScheduler(context.Background())
	require.NoError(t, RegisterDashboardRefresh(s, ctrl, 0))
	s.RunOnce(context.Background())
	assert.Zero(t, ctrl.fetches.Load())

	require.NoError(t, RegisterDashboardRefresh(s, ctrl, time.Minute))
	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), ctrl.fetches.Load())
}
