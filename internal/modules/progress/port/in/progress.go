package in

import (
	"context"

	"physiq/internal/modules/progress/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	// Overview joins stats and the score trend; both fetches run concurrently
	// and the page composes only when every one of them has resolved.
	Overview(ctx context.Context) (dto.OverviewOutput, error)
}
