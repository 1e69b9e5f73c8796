package out

import (
	"context"

	"physiq/internal/modules/dashboard/domain"
	dashboardout "physiq/internal/modules/dashboard/port/out"
	progressin "physiq/internal/modules/progress/port/in"
)

type ProgressStatsAdapter struct {
	progress progressin.Usecase
}

func NewProgressStatsAdapter(progress progressin.Usecase) dashboardout.StatsSource {
	return &ProgressStatsAdapter{progress: progress}
}

func (a *ProgressStatsAdapter) Summary(ctx context.Context) (domain.Stats, error) {
	stats, err := a.progress.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		TotalAnalyses:  stats.TotalAnalyses,
		CurrentStreak:  stats.CurrentStreak,
		ImprovementPct: stats.ImprovementPct,
	}, nil
}
