package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"physiq/internal/modules/progress/domain"
	"physiq/internal/modules/progress/service"
	"physiq/internal/modules/progress/usecase"
)

type fakeStats struct {
	stats domain.Stats
	err   error
}

func (f *fakeStats) Stats(context.Context) (domain.Stats, error) {
	if f.err != nil {
		return domain.Stats{}, f.err
	}
	return f.stats, nil
}

type fakeScores struct {
	points []domain.TrendPoint
	err    error
}

func (f *fakeScores) Scores(context.Context) ([]domain.TrendPoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC)
}

func TestOverviewJoinsStatsAndReversesTrend(t *testing.T) {
	t.Parallel()
	stats := &fakeStats{stats: domain.Stats{
		TotalAnalyses:     3,
		CurrentStreak:     2,
		ImprovementPct:    12.5,
		MuscleDevelopment: map[string]string{"chest": "moderate"},
	}}
	scores := &fakeScores{points: []domain.TrendPoint{
		{Date: day(20), Score: 70},
		{Date: day(15), Score: 60},
		{Date: day(10), Score: 50},
	}}
	uc := usecase.NewInteractor(service.NewProgressService(stats, scores))

	overview, err := uc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Stats.TotalAnalyses != 3 || overview.Stats.ImprovementPct != 12.5 {
		t.Fatalf("unexpected stats: %+v", overview.Stats)
	}
	if len(overview.Trend) != 3 {
		t.Fatalf("expected 3 trend points, got %d", len(overview.Trend))
	}
	for i := 1; i < len(overview.Trend); i++ {
		if overview.Trend[i].Date.Before(overview.Trend[i-1].Date) {
			t.Fatalf("trend must ascend by date for charting, got %+v", overview.Trend)
		}
	}
	if overview.Trend[0].Score != 50 || overview.Trend[2].Score != 70 {
		t.Fatalf("unexpected trend order: %+v", overview.Trend)
	}
}

func TestOverviewFailsWhenAnyFetchFails(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("temporarily unavailable")
	uc := usecase.NewInteractor(service.NewProgressService(
		&fakeStats{err: wantErr},
		&fakeScores{points: []domain.TrendPoint{{Date: day(1), Score: 40}}},
	))

	if _, err := uc.Overview(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected the fetch failure to surface, got %v", err)
	}
}

func TestOverviewWithNoHistoryStillRenders(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewProgressService(
		&fakeStats{stats: domain.Stats{}},
		&fakeScores{},
	))

	overview, err := uc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Trend) != 0 || overview.Stats.TotalAnalyses != 0 {
		t.Fatalf("expected empty overview, got %+v", overview)
	}
}
