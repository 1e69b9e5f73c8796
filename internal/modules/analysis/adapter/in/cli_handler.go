package in

import (
	"context"

	analysisdto "physiq/internal/modules/analysis/dto"
	analysisin "physiq/internal/modules/analysis/port/in"
)

type CLIHandler struct {
	usecase analysisin.Usecase
}

func NewCLIHandler(usecase analysisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) History(ctx context.Context) ([]analysisdto.AnalysisOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (analysisdto.AnalysisDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Upload(ctx context.Context, path string) (analysisdto.AnalysisOutput, error) {
	return h.usecase.Upload(ctx, analysisdto.UploadInput{Path: path})
}

func (h CLIHandler) Uploading() bool {
	return h.usecase.Uploading()
}
