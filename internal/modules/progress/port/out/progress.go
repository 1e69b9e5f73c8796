package out

import (
	"context"

	"physiq/internal/modules/progress/domain"
)

type StatsGateway interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// ScoreHistory yields score samples newest first, as the server sorts them.
type ScoreHistory interface {
	Scores(ctx context.Context) ([]domain.TrendPoint, error)
}
