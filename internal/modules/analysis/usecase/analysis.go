package usecase

import (
	"context"

	"physiq/internal/modules/analysis/domain"
	analysisdto "physiq/internal/modules/analysis/dto"
	analysisin "physiq/internal/modules/analysis/port/in"
	"physiq/internal/modules/analysis/service"
)

type Interactor struct {
	svc *service.AnalysisService
}

func NewInteractor(svc *service.AnalysisService) analysisin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) History(ctx context.Context) ([]analysisdto.AnalysisOutput, error) {
	analyses, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]analysisdto.AnalysisOutput, 0, len(analyses))
	for _, analysis := range analyses {
		outputs = append(outputs, analysisOutput(analysis))
	}
	return outputs, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (analysisdto.AnalysisDetailOutput, error) {
	analysis, err := i.svc.Get(ctx, id)
	if err != nil {
		return analysisdto.AnalysisDetailOutput{}, err
	}
	return analysisdto.AnalysisDetailOutput{
		ID:                analysis.ID,
		TakenAt:           analysis.TakenAt,
		MuscleGroups:      levelStrings(analysis.MuscleGroups),
		WeakAreas:         analysis.WeakAreas,
		Recommendations:   analysis.Recommendations,
		OverallAssessment: analysis.OverallAssessment,
		ProgressScore:     analysis.ProgressScore,
		ImageBase64:       analysis.ImageBase64,
	}, nil
}

func (i *Interactor) Upload(ctx context.Context, input analysisdto.UploadInput) (analysisdto.AnalysisOutput, error) {
	analysis, err := i.svc.Upload(ctx, input.Path)
	if err != nil {
		return analysisdto.AnalysisOutput{}, err
	}
	return analysisOutput(analysis), nil
}

func (i *Interactor) Uploading() bool {
	return i.svc.Uploading()
}

func analysisOutput(analysis domain.Analysis) analysisdto.AnalysisOutput {
	return analysisdto.AnalysisOutput{
		ID:                analysis.ID,
		TakenAt:           analysis.TakenAt,
		MuscleGroups:      levelStrings(analysis.MuscleGroups),
		WeakAreas:         analysis.WeakAreas,
		Recommendations:   analysis.Recommendations,
		OverallAssessment: analysis.OverallAssessment,
		ProgressScore:     analysis.ProgressScore,
	}
}

func levelStrings(groups map[string]domain.Level) map[string]string {
	if groups == nil {
		return nil
	}
	out := make(map[string]string, len(groups))
	for name, level := range groups {
		out[name] = string(level)
	}
	return out
}
