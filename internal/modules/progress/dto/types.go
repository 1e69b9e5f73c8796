package dto

import "time"

type StatsOutput struct {
	TotalAnalyses     int
	CurrentStreak     int
	ImprovementPct    float64
	MuscleDevelopment map[string]string
}

type TrendPointOutput struct {
	Date  time.Time
	Score float64
}

type OverviewOutput struct {
	Stats StatsOutput
	Trend []TrendPointOutput
}
