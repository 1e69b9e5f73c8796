// Package out declares the outbound ports of the archive module.
package out

import (
	"context"

	"physiq/internal/modules/archive/domain"
)

// ArchiveStore persists archived analyses and sync snapshots.
// Writes issued inside a transaction manager callback must join that
// transaction.
type ArchiveStore interface {
	UpsertRecord(ctx context.Context, record domain.Record) error
	InsertSnapshot(ctx context.Context, snapshot domain.Snapshot) error

	// ListRecords returns all archived analyses, newest first.
	ListRecords(ctx context.Context) ([]domain.Record, error)

	// GetRecord returns apperrors.ErrNotFound for an unknown id.
	GetRecord(ctx context.Context, id string) (domain.Record, error)

	// LastSnapshot returns the most recent sync snapshot, or
	// apperrors.ErrNotFound when no sync has run.
	LastSnapshot(ctx context.Context) (domain.Snapshot, error)
}

// AnalysisSource yields the account's analyses as archive records.
// ArchivedAt is left zero; the sync run stamps it.
type AnalysisSource interface {
	Analyses(ctx context.Context) ([]domain.Record, error)
}

// StatsSource yields the server-side aggregate stats.
type StatsSource interface {
	Summary(ctx context.Context) (domain.StatsSummary, error)
}
