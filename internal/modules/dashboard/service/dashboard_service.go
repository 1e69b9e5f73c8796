package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"physiq/internal/modules/dashboard/domain"
	dashboardout "physiq/internal/modules/dashboard/port/out"
)

type DashboardService struct {
	accounts dashboardout.AccountSource
	history  dashboardout.HistorySource
	stats    dashboardout.StatsSource
}

func NewDashboardService(accounts dashboardout.AccountSource, history dashboardout.HistorySource, stats dashboardout.StatsSource) *DashboardService {
	return &DashboardService{accounts: accounts, history: history, stats: stats}
}

// Load runs the three page fetches concurrently and joins them before
// composing anything. There is no dedup, retry, or cache here; a slow fetch
// simply keeps the page loading until the transport resolves it.
func (s *DashboardService) Load(ctx context.Context) (domain.Snapshot, error) {
	var (
		account domain.Account
		entries []domain.Entry
		stats   domain.Stats
	)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		account, err = s.accounts.Current(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		entries, err = s.history.Entries(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		stats, err = s.stats.Summary(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return domain.Snapshot{}, err
	}
	return domain.BuildSnapshot(account, stats, entries), nil
}
