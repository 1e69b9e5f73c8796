package out

import (
	"context"
	"io"

	"physiq/internal/modules/analysis/domain"
)

type AnalysisGateway interface {
	History(ctx context.Context) ([]domain.Analysis, error)
	Get(ctx context.Context, id string) (domain.Analysis, error)
	Upload(ctx context.Context, filename, mediaType string, photo io.Reader) (domain.Analysis, error)
}
