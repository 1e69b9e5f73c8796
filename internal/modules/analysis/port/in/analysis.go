package in

import (
	"context"

	"physiq/internal/modules/analysis/dto"
)

type Usecase interface {
	History(ctx context.Context) ([]dto.AnalysisOutput, error)
	Get(ctx context.Context, id string) (dto.AnalysisDetailOutput, error)
	Upload(ctx context.Context, input dto.UploadInput) (dto.AnalysisOutput, error)
	// Uploading reports whether an upload is currently in flight.
	Uploading() bool
}
