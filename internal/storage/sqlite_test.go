package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/hxrsha10/reguflow/internal/roadmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id, userID, scenario string, createdAt time.Time) *roadmap.Record {
	return &roadmap.Record{
		ID:       id,
		UserID:   userID,
		Scenario: scenario,
		Roadmap: roadmap.Roadmap{
			ApplicableRegulations:   []roadmap.Regulation{{Name: "GST Act", Description: "tax"}},
			ComplianceObligations:   []string{"file returns"},
			ActionableTaskChecklist: []roadmap.ChecklistItem{{Task: "register", Description: "portal"}},
			RequiredDocuments:       []string{"PAN"},
			DeadlinesFrequency:      []string{"monthly"},
			RiskFlags:               []string{"penalty"},
			MonitoringSuggestions:   []string{"portal alerts"},
		},
		CreatedAt: createdAt,
	}
}

func TestSQLiteStore_SaveAndGetRecord(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := testRecord("r1", "u1", "tea stall in Chennai", time.Now())
	require.NoError(t, store.SaveRecord(ctx, rec))

	loaded, err := store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "u1", loaded.UserID)
	assert.Equal(t, "tea stall in Chennai", loaded.Scenario)
	assert.Equal(t, rec.Roadmap, loaded.Roadmap)
	assert.Empty(t, loaded.CompletedTasks)
}

func TestSQLiteStore_ListRecords_NewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveRecord(ctx, testRecord("r1", "u1", "oldest", base)))
	require.NoError(t, store.SaveRecord(ctx, testRecord("r2", "u1", "middle", base.Add(10*time.Minute))))
	require.NoError(t, store.SaveRecord(ctx, testRecord("r3", "u1", "newest", base.Add(20*time.Minute))))
	require.NoError(t, store.SaveRecord(ctx, testRecord("r4", "other", "not mine", base.Add(30*time.Minute))))

	records, err := store.ListRecords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "newest", records[0].Scenario)
	assert.Equal(t, "middle", records[1].Scenario)
	assert.Equal(t, "oldest", records[2].Scenario)
}

func TestSQLiteStore_UpdateCompletedTasks(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord("r1", "u1", "scenario", time.Now())))
	require.NoError(t, store.UpdateCompletedTasks(ctx, "r1", []string{"task-0", "task-2"}))

	loaded, err := store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"task-0", "task-2"}, loaded.CompletedTasks)

	// Clearing the set persists an empty list, not null.
	require.NoError(t, store.UpdateCompletedTasks(ctx, "r1", nil))
	loaded, err = store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, loaded.CompletedTasks)
}

func TestSQLiteStore_UpdateCompletedTasks_UnknownRecord(t *testing.T) {
	store := testStore(t)

	err := store.UpdateCompletedTasks(context.Background(), "missing", []string{"task-0"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSQLiteStore_RecentScenarios_BoundedNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, scenario := range []string{"first", "second", "third", "fourth"} {
		rec := testRecord(scenario, "u1", scenario, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveRecord(ctx, rec))
	}

	scenarios, err := store.RecentScenarios(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"fourth", "third", "second"}, scenarios)
}
