package in

import (
	"context"

	progressdto "physiq/internal/modules/progress/dto"
	progressin "physiq/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (progressdto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Overview(ctx context.Context) (progressdto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}
