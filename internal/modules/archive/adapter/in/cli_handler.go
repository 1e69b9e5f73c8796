package in

import (
	"context"

	archivedto "physiq/internal/modules/archive/dto"
	archivein "physiq/internal/modules/archive/port/in"
)

type CLIHandler struct {
	usecase archivein.Usecase
}

func NewCLIHandler(usecase archivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Sync(ctx context.Context) (archivedto.SyncOutput, error) {
	return h.usecase.Sync(ctx)
}

func (h CLIHandler) List(ctx context.Context) (archivedto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (archivedto.RecordOutput, error) {
	return h.usecase.Get(ctx, id)
}
