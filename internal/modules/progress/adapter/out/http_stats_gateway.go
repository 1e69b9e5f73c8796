package out

import (
	"context"
	"net/http"

	"physiq/internal/modules/progress/domain"
	progressout "physiq/internal/modules/progress/port/out"
	"physiq/internal/platform/rest"
)

type HTTPStatsGateway struct {
	client *rest.Client
}

func NewHTTPStatsGateway(client *rest.Client) progressout.StatsGateway {
	return &HTTPStatsGateway{client: client}
}

func (g *HTTPStatsGateway) Stats(ctx context.Context) (domain.Stats, error) {
	var out struct {
		TotalAnalyses     int               `json:"total_analyses"`
		CurrentStreak     int               `json:"current_streak"`
		ImprovementPct    float64           `json:"improvement_percentage"`
		MuscleDevelopment map[string]string `json:"muscle_development"`
	}
	if err := g.client.DoAuthed(ctx, http.MethodGet, "/progress/stats", nil, &out); err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		TotalAnalyses:     out.TotalAnalyses,
		CurrentStreak:     out.CurrentStreak,
		ImprovementPct:    out.ImprovementPct,
		MuscleDevelopment: out.MuscleDevelopment,
	}, nil
}
