package domain

import "time"

// Stats is the server-computed progress summary. The client renders it as is;
// streaks and improvement math are server business.
type Stats struct {
	TotalAnalyses     int
	CurrentStreak     int
	ImprovementPct    float64
	MuscleDevelopment map[string]string
}

// TrendPoint is one score sample for the trend chart.
type TrendPoint struct {
	Date  time.Time
	Score float64
}

// Overview is everything the progress page shows in one shot.
type Overview struct {
	Stats Stats
	Trend []TrendPoint
}

// AscendingTrend reorders newest-first samples into chart order. The server
// hands history out newest first; charts read left to right.
func AscendingTrend(points []TrendPoint) []TrendPoint {
	if len(points) < 2 {
		return points
	}
	reversed := make([]TrendPoint, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}
	return reversed
}
