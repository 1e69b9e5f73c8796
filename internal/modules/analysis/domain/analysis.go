package domain

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

type Level string

const (
	LevelWeak     Level = "weak"
	LevelModerate Level = "moderate"
	LevelStrong   Level = "strong"
)

// Rank orders levels for rendering bars; unknown levels sort lowest.
func (l Level) Rank() int {
	switch l {
	case LevelWeak:
		return 1
	case LevelModerate:
		return 2
	case LevelStrong:
		return 3
	default:
		return 0
	}
}

// Analysis is one assessed photo: per-muscle ratings plus the coaching text
// produced for it. ImageBase64 rides along only on single-analysis fetches;
// list responses omit it to keep payloads small.
type Analysis struct {
	ID                string
	UserID            string
	TakenAt           time.Time
	MuscleGroups      map[string]Level
	WeakAreas         []string
	Recommendations   []string
	OverallAssessment string
	ProgressScore     float64
	ImageBase64       string
}

// DeclaredMediaType mirrors what a browser reports for a picked file: a type
// derived from the name alone, no content sniffing.
func DeclaredMediaType(path string) string {
	return mime.TypeByExtension(filepath.Ext(path))
}

func IsImageType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}
