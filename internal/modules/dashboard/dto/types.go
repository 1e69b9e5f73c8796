package dto

import "time"

type EntryOutput struct {
	ID        string
	TakenAt   time.Time
	Score     float64
	WeakAreas int
}

type SnapshotOutput struct {
	Name           string
	Email          string
	Joined         time.Time
	TotalAnalyses  int
	CurrentStreak  int
	ImprovementPct float64
	LatestScore    float64
	Entries        []EntryOutput
}
