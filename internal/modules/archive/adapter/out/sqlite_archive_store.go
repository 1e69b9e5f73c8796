package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "physiq/internal/platform/errors"

	"physiq/internal/modules/archive/domain"
	"physiq/internal/platform/tx"
)

// SQLiteArchiveStore keeps archived analyses in a local sqlite file.
// Muscle groups, weak areas and recommendations are stored as JSON text
// columns; the archive only ever reads them back whole.
type SQLiteArchiveStore struct {
	db *sql.DB
}

func NewSQLiteArchiveStore(dbPath string) (*SQLiteArchiveStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteArchiveStore{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS analyses (
	id                 TEXT PRIMARY KEY,
	taken_at           TEXT NOT NULL,
	progress_score     REAL NOT NULL,
	muscle_groups      TEXT NOT NULL,
	weak_areas         TEXT NOT NULL,
	recommendations    TEXT NOT NULL,
	overall_assessment TEXT NOT NULL,
	archived_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_taken_at ON analyses(taken_at DESC);

CREATE TABLE IF NOT EXISTS snapshots (
	id              TEXT PRIMARY KEY,
	taken_at        TEXT NOT NULL,
	analysis_count  INTEGER NOT NULL,
	current_streak  INTEGER NOT NULL,
	improvement_pct REAL NOT NULL
);
`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// DB exposes the handle so a transaction manager can wrap writes.
func (s *SQLiteArchiveStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteArchiveStore) Close() error {
	return s.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// writer joins the transaction carried by ctx when there is one.
func (s *SQLiteArchiveStore) writer(ctx context.Context) execer {
	if txn, ok := tx.From(ctx); ok {
		return txn
	}
	return s.db
}

func (s *SQLiteArchiveStore) UpsertRecord(ctx context.Context, record domain.Record) error {
	muscles, err := json.Marshal(record.MuscleGroups)
	if err != nil {
		return fmt.Errorf("encode muscle groups: %w", err)
	}
	weak, err := json.Marshal(record.WeakAreas)
	if err != nil {
		return fmt.Errorf("encode weak areas: %w", err)
	}
	recs, err := json.Marshal(record.Recommendations)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	const upsert = `
INSERT INTO analyses (id, taken_at, progress_score, muscle_groups, weak_areas, recommendations, overall_assessment, archived_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	taken_at           = excluded.taken_at,
	progress_score     = excluded.progress_score,
	muscle_groups      = excluded.muscle_groups,
	weak_areas         = excluded.weak_areas,
	recommendations    = excluded.recommendations,
	overall_assessment = excluded.overall_assessment,
	archived_at        = excluded.archived_at
`
	_, err = s.writer(ctx).ExecContext(ctx, upsert,
		record.ID,
		record.TakenAt.UTC().Format(time.RFC3339Nano),
		record.ProgressScore,
		string(muscles),
		string(weak),
		string(recs),
		record.OverallAssessment,
		record.ArchivedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert analysis %s: %w", record.ID, err)
	}
	return nil
}

func (s *SQLiteArchiveStore) InsertSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	const insert = `
INSERT INTO snapshots (id, taken_at, analysis_count, current_streak, improvement_pct)
VALUES (?, ?, ?, ?, ?)
`
	_, err := s.writer(ctx).ExecContext(ctx, insert,
		snapshot.ID,
		snapshot.TakenAt.UTC().Format(time.RFC3339Nano),
		snapshot.AnalysisCount,
		snapshot.CurrentStreak,
		snapshot.ImprovementPct,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveStore) ListRecords(ctx context.Context) ([]domain.Record, error) {
	const query = `
SELECT id, taken_at, progress_score, muscle_groups, weak_areas, recommendations, overall_assessment, archived_at
FROM analyses
ORDER BY taken_at DESC
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list archived analyses: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list archived analyses: %w", err)
	}
	return records, nil
}

func (s *SQLiteArchiveStore) GetRecord(ctx context.Context, id string) (domain.Record, error) {
	const query = `
SELECT id, taken_at, progress_score, muscle_groups, weak_areas, recommendations, overall_assessment, archived_at
FROM analyses
WHERE id = ?
`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("archived analysis %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *SQLiteArchiveStore) LastSnapshot(ctx context.Context) (domain.Snapshot, error) {
	const query = `
SELECT id, taken_at, analysis_count, current_streak, improvement_pct
FROM snapshots
ORDER BY taken_at DESC
LIMIT 1
`
	var (
		snapshot domain.Snapshot
		takenAt  string
	)
	err := s.db.QueryRowContext(ctx, query).Scan(
		&snapshot.ID,
		&takenAt,
		&snapshot.AnalysisCount,
		&snapshot.CurrentStreak,
		&snapshot.ImprovementPct,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, fmt.Errorf("sync snapshot: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load last snapshot: %w", err)
	}
	if snapshot.TakenAt, err = parseStoredTime(takenAt); err != nil {
		return domain.Snapshot{}, err
	}
	return snapshot, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		record     domain.Record
		takenAt    string
		archivedAt string
		muscles    string
		weak       string
		recs       string
	)
	err := row.Scan(
		&record.ID,
		&takenAt,
		&record.ProgressScore,
		&muscles,
		&weak,
		&recs,
		&record.OverallAssessment,
		&archivedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}
	if record.TakenAt, err = parseStoredTime(takenAt); err != nil {
		return domain.Record{}, err
	}
	if record.ArchivedAt, err = parseStoredTime(archivedAt); err != nil {
		return domain.Record{}, err
	}
	if err := json.Unmarshal([]byte(muscles), &record.MuscleGroups); err != nil {
		return domain.Record{}, fmt.Errorf("decode muscle groups: %w", err)
	}
	if err := json.Unmarshal([]byte(weak), &record.WeakAreas); err != nil {
		return domain.Record{}, fmt.Errorf("decode weak areas: %w", err)
	}
	if err := json.Unmarshal([]byte(recs), &record.Recommendations); err != nil {
		return domain.Record{}, fmt.Errorf("decode recommendations: %w", err)
	}
	return record, nil
}

func parseStoredTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return parsed, nil
}
