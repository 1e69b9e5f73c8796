// Package usecase exposes the archive module's inbound port.
package usecase

import (
	"context"
	"errors"
	"time"

	apperrors "physiq/internal/platform/errors"

	"physiq/internal/modules/archive/domain"
	"physiq/internal/modules/archive/dto"
	archivein "physiq/internal/modules/archive/port/in"
	"physiq/internal/modules/archive/service"
)

// Interactor implements in.Usecase on top of the archive service.
type Interactor struct {
	svc *service.ArchiveService
}

func NewInteractor(svc *service.ArchiveService) archivein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Sync(ctx context.Context) (dto.SyncOutput, error) {
	snapshot, err := i.svc.Sync(ctx)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return dto.SyncOutput{
		SnapshotID:     snapshot.ID,
		TakenAt:        snapshot.TakenAt,
		ArchivedCount:  snapshot.AnalysisCount,
		CurrentStreak:  snapshot.CurrentStreak,
		ImprovementPct: snapshot.ImprovementPct,
	}, nil
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	records, err := i.svc.Records(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}

	var lastSynced time.Time
	snapshot, err := i.svc.LastSync(ctx)
	switch {
	case err == nil:
		lastSynced = snapshot.TakenAt
	case errors.Is(err, apperrors.ErrNotFound):
		// Never synced; the zero time says so.
	default:
		return dto.ListOutput{}, err
	}

	out := dto.ListOutput{LastSyncedAt: lastSynced, Records: make([]dto.RecordOutput, 0, len(records))}
	for _, record := range records {
		out.Records = append(out.Records, recordOutput(record))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.RecordOutput, error) {
	record, err := i.svc.Record(ctx, id)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return recordOutput(record), nil
}

func recordOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ID:                record.ID,
		TakenAt:           record.TakenAt,
		ProgressScore:     record.ProgressScore,
		MuscleGroups:      record.MuscleGroups,
		WeakAreas:         record.WeakAreas,
		Recommendations:   record.Recommendations,
		OverallAssessment: record.OverallAssessment,
		ArchivedAt:        record.ArchivedAt,
	}
}
