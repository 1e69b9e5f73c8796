package in

import (
	"context"

	dashboarddto "physiq/internal/modules/dashboard/dto"
	dashboardin "physiq/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (dashboarddto.SnapshotOutput, error) {
	return h.usecase.Load(ctx)
}
