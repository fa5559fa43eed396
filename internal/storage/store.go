package storage

import (
	"context"

	"github.com/hxrsha10/reguflow/internal/roadmap"
)

// Store defines operations for persisting roadmap records.
type Store interface {
	// SaveRecord inserts a new roadmap record.
	SaveRecord(ctx context.Context, rec *roadmap.Record) error

	// GetRecord retrieves a record by its ID.
	GetRecord(ctx context.Context, id string) (*roadmap.Record, error)

	// ListRecords returns all records for a user, newest first.
	ListRecords(ctx context.Context, userID string) ([]*roadmap.Record, error)

	// UpdateCompletedTasks replaces the completed-task set of a record.
	UpdateCompletedTasks(ctx context.Context, id string, completed []string) error

	// RecentScenarios returns up to limit scenario texts for a user,
	// newest first, for use as prompt continuity context.
	RecentScenarios(ctx context.Context, userID string, limit int) ([]string, error)

	Close() error
}
