// Package store persists analysis history in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store handles analysis history database operations. It implements
// emotion.HistoryStore.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores an analysis record. A missing ID or timestamp is filled in.
func (s *Store) Insert(ctx context.Context, rec *emotion.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	emotions, err := json.Marshal(rec.Result.Emotions)
	if err != nil {
		return fmt.Errorf("encode emotions: %w", err)
	}
	mixed, err := json.Marshal(rec.Result.MixedEmotions)
	if err != nil {
		return fmt.Errorf("encode mixed emotions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, analysis_type, input_text, dominant_emotion, confidence, emotions, mixed_emotions, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, string(rec.AnalysisType), rec.InputText, string(rec.Result.DominantEmotion),
		rec.Result.Confidence, string(emotions), string(mixed), rec.Result.AnalysisSummary, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return nil
}

// Get retrieves a record by ID
func (s *Store) Get(ctx context.Context, id string) (*emotion.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, analysis_type, input_text, dominant_emotion, confidence, emotions, mixed_emotions, summary, created_at
		FROM analyses WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	return rec, nil
}

// List returns recent records, newest first, with pagination
func (s *Store) List(ctx context.Context, limit, offset int) ([]emotion.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, analysis_type, input_text, dominant_emotion, confidence, emotions, mixed_emotions, summary, created_at
		FROM analyses ORDER BY created_at DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var records []emotion.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// Delete removes a record by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*emotion.Record, error) {
	var rec emotion.Record
	var analysisType, dominant, emotions, mixed string

	err := row.Scan(&rec.ID, &analysisType, &rec.InputText, &dominant,
		&rec.Result.Confidence, &emotions, &mixed, &rec.Result.AnalysisSummary, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.AnalysisType = emotion.AnalysisType(analysisType)
	rec.Result.DominantEmotion = emotion.Category(dominant)

	if err := json.Unmarshal([]byte(emotions), &rec.Result.Emotions); err != nil {
		return nil, fmt.Errorf("decode emotions: %w", err)
	}
	if err := json.Unmarshal([]byte(mixed), &rec.Result.MixedEmotions); err != nil {
		return nil, fmt.Errorf("decode mixed emotions: %w", err)
	}

	return &rec, nil
}
