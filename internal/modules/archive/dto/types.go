// Package dto defines the data transfer objects crossing the archive
// module boundary.
package dto

import "time"

// RecordOutput is one archived analysis as shown to callers.
type RecordOutput struct {
	ID                string
	TakenAt           time.Time
	ProgressScore     float64
	MuscleGroups      map[string]string
	WeakAreas         []string
	Recommendations   []string
	OverallAssessment string
	ArchivedAt        time.Time
}

// SyncOutput reports what a sync run stored.
type SyncOutput struct {
	SnapshotID     string
	TakenAt        time.Time
	ArchivedCount  int
	CurrentStreak  int
	ImprovementPct float64
}

// ListOutput is the archive contents plus the time of the last sync.
// LastSyncedAt is zero when no sync has run yet.
type ListOutput struct {
	LastSyncedAt time.Time
	Records      []RecordOutput
}
