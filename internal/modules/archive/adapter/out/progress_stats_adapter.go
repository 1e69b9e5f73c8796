package out

import (
	"context"

	"physiq/internal/modules/archive/domain"
	progressin "physiq/internal/modules/progress/port/in"
)

// ProgressStatsAdapter sources snapshot numbers from the progress
// module's inbound port.
type ProgressStatsAdapter struct {
	progress progressin.Usecase
}

func NewProgressStatsAdapter(progress progressin.Usecase) *ProgressStatsAdapter {
	return &ProgressStatsAdapter{progress: progress}
}

func (a *ProgressStatsAdapter) Summary(ctx context.Context) (domain.StatsSummary, error) {
	stats, err := a.progress.Stats(ctx)
	if err != nil {
		return domain.StatsSummary{}, err
	}
	return domain.StatsSummary{
		TotalAnalyses:  stats.TotalAnalyses,
		CurrentStreak:  stats.CurrentStreak,
		ImprovementPct: stats.ImprovementPct,
	}, nil
}
