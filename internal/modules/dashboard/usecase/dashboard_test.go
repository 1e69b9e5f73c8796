package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"physiq/internal/modules/dashboard/domain"
	"physiq/internal/modules/dashboard/service"
	"physiq/internal/modules/dashboard/usecase"
)

type fakeAccounts struct {
	account domain.Account
	err     error
}

func (f *fakeAccounts) Current(context.Context) (domain.Account, error) {
	return f.account, f.err
}

type fakeHistory struct {
	entries []domain.Entry
	err     error
}

func (f *fakeHistory) Entries(context.Context) ([]domain.Entry, error) {
	return f.entries, f.err
}

type fakeStats struct {
	stats domain.Stats
	err   error
}

func (f *fakeStats) Summary(context.Context) (domain.Stats, error) {
	return f.stats, f.err
}

func TestLoadComposesSnapshotFromAllThreeFetches(t *testing.T) {
	t.Parallel()
	joined := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc := usecase.NewInteractor(service.NewDashboardService(
		&fakeAccounts{account: domain.Account{Name: "Ana", Email: "ana@example.com", Joined: joined}},
		&fakeHistory{entries: []domain.Entry{
			{ID: "an-2", TakenAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), Score: 72, WeakAreas: 1},
			{ID: "an-1", TakenAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Score: 61, WeakAreas: 2},
		}},
		&fakeStats{stats: domain.Stats{TotalAnalyses: 2, CurrentStreak: 1, ImprovementPct: 18.0}},
	))

	snapshot, err := uc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snapshot.Name != "Ana" || !snapshot.Joined.Equal(joined) {
		t.Fatalf("unexpected account fields: %+v", snapshot)
	}
	if snapshot.TotalAnalyses != 2 || snapshot.ImprovementPct != 18.0 {
		t.Fatalf("unexpected stats fields: %+v", snapshot)
	}
	if snapshot.LatestScore != 72 {
		t.Fatalf("latest score must come from the newest entry, got %.1f", snapshot.LatestScore)
	}
	if len(snapshot.Entries) != 2 || snapshot.Entries[0].ID != "an-2" {
		t.Fatalf("unexpected entries: %+v", snapshot.Entries)
	}
}

func TestLoadFailsWhenAnyFetchFails(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("stats unavailable")
	uc := usecase.NewInteractor(service.NewDashboardService(
		&fakeAccounts{account: domain.Account{Name: "Ana"}},
		&fakeHistory{},
		&fakeStats{err: wantErr},
	))

	snapshot, err := uc.Load(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch failure to surface, got %v", err)
	}
	if snapshot.Name != "" || len(snapshot.Entries) != 0 {
		t.Fatalf("no partial snapshot may escape a failed load, got %+v", snapshot)
	}
}

func TestLoadWithEmptyHistoryHasZeroLatestScore(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewDashboardService(
		&fakeAccounts{account: domain.Account{Name: "Ana"}},
		&fakeHistory{},
		&fakeStats{},
	))

	snapshot, err := uc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snapshot.LatestScore != 0 || len(snapshot.Entries) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", snapshot)
	}
}
