package out

import (
	"context"

	"physiq/internal/modules/dashboard/domain"
)

type AccountSource interface {
	Current(ctx context.Context) (domain.Account, error)
}

type HistorySource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}

type StatsSource interface {
	Summary(ctx context.Context) (domain.Stats, error)
}
