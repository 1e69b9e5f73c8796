package out

import (
	"context"

	analysisin "physiq/internal/modules/analysis/port/in"
	"physiq/internal/modules/progress/domain"
	progressout "physiq/internal/modules/progress/port/out"
)

// AnalysisScoreAdapter reads the score trend out of the analysis history.
type AnalysisScoreAdapter struct {
	analyses analysisin.Usecase
}

func NewAnalysisScoreAdapter(analyses analysisin.Usecase) progressout.ScoreHistory {
	return &AnalysisScoreAdapter{analyses: analyses}
}

func (a *AnalysisScoreAdapter) Scores(ctx context.Context) ([]domain.TrendPoint, error) {
	history, err := a.analyses.History(ctx)
	if err != nil {
		return nil, err
	}
	points := make([]domain.TrendPoint, 0, len(history))
	for _, analysis := range history {
		points = append(points, domain.TrendPoint{Date: analysis.TakenAt, Score: analysis.ProgressScore})
	}
	return points, nil
}
