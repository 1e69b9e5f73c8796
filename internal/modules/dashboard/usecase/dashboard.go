package usecase

import (
	"context"

	dashboarddto "physiq/internal/modules/dashboard/dto"
	dashboardin "physiq/internal/modules/dashboard/port/in"
	"physiq/internal/modules/dashboard/service"
)

type Interactor struct {
	svc *service.DashboardService
}

func NewInteractor(svc *service.DashboardService) dashboardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) (dashboarddto.SnapshotOutput, error) {
	snapshot, err := i.svc.Load(ctx)
	if err != nil {
		return dashboarddto.SnapshotOutput{}, err
	}
	entries := make([]dashboarddto.EntryOutput, 0, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		entries = append(entries, dashboarddto.EntryOutput{
			ID:        entry.ID,
			TakenAt:   entry.TakenAt,
			Score:     entry.Score,
			WeakAreas: entry.WeakAreas,
		})
	}
	return dashboarddto.SnapshotOutput{
		Name:           snapshot.Account.Name,
		Email:          snapshot.Account.Email,
		Joined:         snapshot.Account.Joined,
		TotalAnalyses:  snapshot.Stats.TotalAnalyses,
		CurrentStreak:  snapshot.Stats.CurrentStreak,
		ImprovementPct: snapshot.Stats.ImprovementPct,
		LatestScore:    snapshot.LatestScore,
		Entries:        entries,
	}, nil
}
