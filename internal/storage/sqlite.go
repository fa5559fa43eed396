package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hxrsha10/reguflow/internal/roadmap"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS roadmaps (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			scenario TEXT NOT NULL,
			data JSON NOT NULL,
			completed_tasks JSON NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_roadmaps_user ON roadmaps(user_id, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *roadmap.Record) error {
	data, err := json.Marshal(rec.Roadmap)
	if err != nil {
		return fmt.Errorf("failed to encode roadmap: %w", err)
	}
	completed := rec.CompletedTasks
	if completed == nil {
		completed = []string{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed tasks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roadmaps (id, user_id, scenario, data, completed_tasks, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Scenario, data, completedJSON, rec.CreatedAt.UTC())

	return err
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*roadmap.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, scenario, data, completed_tasks, created_at
		FROM roadmaps WHERE id = ?
	`, id)
	return scanRecord(row)
}

func (s *SQLiteStore) ListRecords(ctx context.Context, userID string) ([]*roadmap.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, scenario, data, completed_tasks, created_at
		FROM roadmaps WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roadmaps: %w", err)
	}
	defer rows.Close()

	var records []*roadmap.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) UpdateCompletedTasks(ctx context.Context, id string, completed []string) error {
	if completed == nil {
		completed = []string{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed tasks: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE roadmaps SET completed_tasks = ? WHERE id = ?
	`, completedJSON, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLiteStore) RecentScenarios(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario FROM roadmaps
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []string
	for rows.Next() {
		var scenario string
		if err := rows.Scan(&scenario); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*roadmap.Record, error) {
	var rec roadmap.Record
	var data, completed []byte
	var createdAt time.Time
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Scenario, &data, &completed, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &rec.Roadmap); err != nil {
		return nil, fmt.Errorf("failed to decode roadmap: %w", err)
	}
	if len(completed) > 0 {
		if err := json.Unmarshal(completed, &rec.CompletedTasks); err != nil {
			return nil, fmt.Errorf("failed to decode completed tasks: %w", err)
		}
	}
	rec.CreatedAt = createdAt
	return &rec, nil
}
