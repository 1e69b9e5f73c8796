package out

import (
	"context"

	analysisin "physiq/internal/modules/analysis/port/in"
	"physiq/internal/modules/dashboard/domain"
	dashboardout "physiq/internal/modules/dashboard/port/out"
)

type AnalysisHistoryAdapter struct {
	analyses analysisin.Usecase
}

func NewAnalysisHistoryAdapter(analyses analysisin.Usecase) dashboardout.HistorySource {
	return &AnalysisHistoryAdapter{analyses: analyses}
}

func (a *AnalysisHistoryAdapter) Entries(ctx context.Context) ([]domain.Entry, error) {
	history, err := a.analyses.History(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(history))
	for _, analysis := range history {
		entries = append(entries, domain.Entry{
			ID:        analysis.ID,
			TakenAt:   analysis.TakenAt,
			Score:     analysis.ProgressScore,
			WeakAreas: len(analysis.WeakAreas),
		})
	}
	return entries, nil
}
