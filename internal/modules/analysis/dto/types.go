package dto

import "time"

type AnalysisOutput struct {
	ID                string
	TakenAt           time.Time
	MuscleGroups      map[string]string
	WeakAreas         []string
	Recommendations   []string
	OverallAssessment string
	ProgressScore     float64
}

type AnalysisDetailOutput struct {
	ID                string
	TakenAt           time.Time
	MuscleGroups      map[string]string
	WeakAreas         []string
	Recommendations   []string
	OverallAssessment string
	ProgressScore     float64
	ImageBase64       string
}

type UploadInput struct {
	Path string
}
