// Package service implements the archive domain logic.
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "physiq/internal/platform/errors"

	"physiq/internal/modules/archive/domain"
	"physiq/internal/modules/archive/port/out"
	"physiq/internal/platform/clock"
	"physiq/internal/platform/id"
	"physiq/internal/platform/tx"
)

// ArchiveService syncs server analyses into the local store and reads
// them back.
type ArchiveService struct {
	clk    clock.Clock
	ids    id.Generator
	store  out.ArchiveStore
	source out.AnalysisSource
	stats  out.StatsSource
	txm    tx.Manager
}

func NewArchiveService(
	clk clock.Clock,
	ids id.Generator,
	store out.ArchiveStore,
	source out.AnalysisSource,
	stats out.StatsSource,
	txm tx.Manager,
) *ArchiveService {
	return &ArchiveService{clk: clk, ids: ids, store: store, source: source, stats: stats, txm: txm}
}

// Sync fetches history and stats concurrently, then writes every record
// and one snapshot row inside a single transaction. A failed fetch or a
// failed write leaves the archive exactly as it was.
func (s *ArchiveService) Sync(ctx context.Context) (domain.Snapshot, error) {
	var (
		records []domain.Record
		summary domain.StatsSummary
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		records, err = s.source.Analyses(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		summary, err = s.stats.Summary(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch archive contents: %w", err)
	}

	now := s.clk.Now()
	snapshot := domain.Snapshot{
		ID:             s.ids.New(),
		TakenAt:        now,
		AnalysisCount:  len(records),
		CurrentStreak:  summary.CurrentStreak,
		ImprovementPct: summary.ImprovementPct,
	}

	err := s.txm.Within(ctx, func(ctx context.Context) error {
		for i := range records {
			records[i].ArchivedAt = now
			if err := s.store.UpsertRecord(ctx, records[i]); err != nil {
				return fmt.Errorf("archive analysis %s: %w", records[i].ID, err)
			}
		}
		return s.store.InsertSnapshot(ctx, snapshot)
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snapshot, nil
}

// Records returns the archived analyses, newest first.
func (s *ArchiveService) Records(ctx context.Context) ([]domain.Record, error) {
	return s.store.ListRecords(ctx)
}

// Record returns one archived analysis.
func (s *ArchiveService) Record(ctx context.Context, recordID string) (domain.Record, error) {
	if recordID == "" {
		return domain.Record{}, fmt.Errorf("%w: analysis id is required", apperrors.ErrInvalidInput)
	}
	return s.store.GetRecord(ctx, recordID)
}

// LastSync returns the most recent sync snapshot.
func (s *ArchiveService) LastSync(ctx context.Context) (domain.Snapshot, error) {
	return s.store.LastSnapshot(ctx)
}
