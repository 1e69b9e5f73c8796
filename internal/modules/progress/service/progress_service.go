package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"physiq/internal/modules/progress/domain"
	progressout "physiq/internal/modules/progress/port/out"
)

type ProgressService struct {
	stats   progressout.StatsGateway
	history progressout.ScoreHistory
}

func NewProgressService(stats progressout.StatsGateway, history progressout.ScoreHistory) *ProgressService {
	return &ProgressService{stats: stats, history: history}
}

func (s *ProgressService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.stats.Stats(ctx)
}

// Overview fetches stats and the score history concurrently and composes only
// once both have resolved; the first failure wins and cancels the other fetch.
func (s *ProgressService) Overview(ctx context.Context) (domain.Overview, error) {
	var (
		stats  domain.Stats
		points []domain.TrendPoint
	)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		stats, err = s.stats.Stats(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		points, err = s.history.Scores(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return domain.Overview{}, err
	}
	return domain.Overview{
		Stats: stats,
		Trend: domain.AscendingTrend(points),
	}, nil
}
