package usecase

import (
	"context"

	"physiq/internal/modules/progress/domain"
	progressdto "physiq/internal/modules/progress/dto"
	progressin "physiq/internal/modules/progress/port/in"
	"physiq/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Stats(ctx context.Context) (progressdto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return progressdto.StatsOutput{}, err
	}
	return statsOutput(stats), nil
}

func (i *Interactor) Overview(ctx context.Context) (progressdto.OverviewOutput, error) {
	overview, err := i.svc.Overview(ctx)
	if err != nil {
		return progressdto.OverviewOutput{}, err
	}
	trend := make([]progressdto.TrendPointOutput, 0, len(overview.Trend))
	for _, point := range overview.Trend {
		trend = append(trend, progressdto.TrendPointOutput{Date: point.Date, Score: point.Score})
	}
	return progressdto.OverviewOutput{
		Stats: statsOutput(overview.Stats),
		Trend: trend,
	}, nil
}

func statsOutput(stats domain.Stats) progressdto.StatsOutput {
	return progressdto.StatsOutput{
		TotalAnalyses:     stats.TotalAnalyses,
		CurrentStreak:     stats.CurrentStreak,
		ImprovementPct:    stats.ImprovementPct,
		MuscleDevelopment: stats.MuscleDevelopment,
	}
}
