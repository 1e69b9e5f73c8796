package out

import (
	"context"

	analysisin "physiq/internal/modules/analysis/port/in"
	"physiq/internal/modules/archive/domain"
)

// AnalysisSourceAdapter feeds the archive from the analysis module's
// inbound port, so sync goes through the same authenticated loader as
// the history screen.
type AnalysisSourceAdapter struct {
	analyses analysisin.Usecase
}

func NewAnalysisSourceAdapter(analyses analysisin.Usecase) *AnalysisSourceAdapter {
	return &AnalysisSourceAdapter{analyses: analyses}
}

func (a *AnalysisSourceAdapter) Analyses(ctx context.Context) ([]domain.Record, error) {
	history, err := a.analyses.History(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(history))
	for _, analysis := range history {
		records = append(records, domain.Record{
			ID:                analysis.ID,
			TakenAt:           analysis.TakenAt,
			ProgressScore:     analysis.ProgressScore,
			MuscleGroups:      analysis.MuscleGroups,
			WeakAreas:         analysis.WeakAreas,
			Recommendations:   analysis.Recommendations,
			OverallAssessment: analysis.OverallAssessment,
		})
	}
	return records, nil
}
