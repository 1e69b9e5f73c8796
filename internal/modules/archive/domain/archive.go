package domain

import "time"

// Record is one archived analysis, denormalized enough to read offline.
// History payloads never carry the photo, so neither does the archive.
type Record struct {
	ID                string
	TakenAt           time.Time
	ProgressScore     float64
	MuscleGroups      map[string]string
	WeakAreas         []string
	Recommendations   []string
	OverallAssessment string
	ArchivedAt        time.Time
}

// StatsSummary is the slice of the server stats a snapshot keeps.
type StatsSummary struct {
	TotalAnalyses  int
	CurrentStreak  int
	ImprovementPct float64
}

// Snapshot summarizes one sync run.
type Snapshot struct {
	ID             string
	TakenAt        time.Time
	AnalysisCount  int
	CurrentStreak  int
	ImprovementPct float64
}
