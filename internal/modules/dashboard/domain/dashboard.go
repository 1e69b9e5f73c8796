package domain

import "time"

type Account struct {
	Name   string
	Email  string
	Joined time.Time
}

type Entry struct {
	ID        string
	TakenAt   time.Time
	Score     float64
	WeakAreas int
}

type Stats struct {
	TotalAnalyses  int
	CurrentStreak  int
	ImprovementPct float64
}

// Snapshot is the dashboard's all-or-nothing payload: it exists only when
// every fetch behind it has resolved.
type Snapshot struct {
	Account     Account
	Stats       Stats
	LatestScore float64
	Entries     []Entry
}

// BuildSnapshot assembles the page from the three fetches. Entries arrive
// newest first, so the latest score is simply the head of the list.
func BuildSnapshot(account Account, stats Stats, entries []Entry) Snapshot {
	snapshot := Snapshot{Account: account, Stats: stats, Entries: entries}
	if len(entries) > 0 {
		snapshot.LatestScore = entries[0].Score
	}
	return snapshot
}
