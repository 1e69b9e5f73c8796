package out

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"physiq/internal/modules/analysis/domain"
	analysisout "physiq/internal/modules/analysis/port/out"
	"physiq/internal/platform/rest"
)

type HTTPAnalysisGateway struct {
	client *rest.Client
}

func NewHTTPAnalysisGateway(client *rest.Client) analysisout.AnalysisGateway {
	return &HTTPAnalysisGateway{client: client}
}

// History returns analyses newest first, exactly as the server sorts them.
func (g *HTTPAnalysisGateway) History(ctx context.Context) ([]domain.Analysis, error) {
	var out []analysisWire
	if err := g.client.DoAuthed(ctx, http.MethodGet, "/analysis/history", nil, &out); err != nil {
		return nil, err
	}
	analyses := make([]domain.Analysis, 0, len(out))
	for _, wire := range out {
		analyses = append(analyses, wire.toDomain())
	}
	return analyses, nil
}

func (g *HTTPAnalysisGateway) Get(ctx context.Context, id string) (domain.Analysis, error) {
	var out analysisWire
	if err := g.client.DoAuthed(ctx, http.MethodGet, "/analysis/"+url.PathEscape(id), nil, &out); err != nil {
		return domain.Analysis{}, err
	}
	return out.toDomain(), nil
}

func (g *HTTPAnalysisGateway) Upload(ctx context.Context, filename, mediaType string, photo io.Reader) (domain.Analysis, error) {
	var out analysisWire
	if err := g.client.UploadAuthed(ctx, "/analysis/upload", "file", filename, mediaType, photo, &out); err != nil {
		return domain.Analysis{}, err
	}
	return out.toDomain(), nil
}

type analysisWire struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	AnalysisDate      time.Time         `json:"analysis_date"`
	MuscleGroups      map[string]string `json:"muscle_groups"`
	WeakAreas         []string          `json:"weak_areas"`
	Recommendations   []string          `json:"recommendations"`
	OverallAssessment string            `json:"overall_assessment"`
	ProgressScore     float64           `json:"progress_score"`
	ImageBase64       string            `json:"image_base64"`
}

func (w analysisWire) toDomain() domain.Analysis {
	groups := make(map[string]domain.Level, len(w.MuscleGroups))
	for name, level := range w.MuscleGroups {
		groups[name] = domain.Level(level)
	}
	return domain.Analysis{
		ID:                w.ID,
		UserID:            w.UserID,
		TakenAt:           w.AnalysisDate,
		MuscleGroups:      groups,
		WeakAreas:         w.WeakAreas,
		Recommendations:   w.Recommendations,
		OverallAssessment: w.OverallAssessment,
		ProgressScore:     w.ProgressScore,
		ImageBase64:       w.ImageBase64,
	}
}
