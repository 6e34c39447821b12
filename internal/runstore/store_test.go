package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tensorprep/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := New(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNew_NoneBackend(t *testing.T) {
	store, err := New(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "/data", nil)
	assert.NoError(t, err)
	assert.Zero(t, runID)

	records, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
	assert.False(t, status.Connected)
}

func TestNew_UnsupportedBackend(t *testing.T) {
	_, err := New(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestStore_RunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Now().UTC()
	runID, err := store.BeginRun(start, "/data/har", map[string]any{"seed": 42})
	require.NoError(t, err)
	assert.Positive(t, runID)

	summary := &schema.PrepareSummary{
		Seed:          42,
		Percentile:    0.98,
		TrainFraction: 0.7,
		PadSize:       100,
		TrainRows:     12,
		TestRows:      4,
		ClassCount:    6,
	}
	end := start.Add(1500 * time.Millisecond)
	require.NoError(t, store.EndRun(runID, end, summary))

	records, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, runID, record.RunID)
	assert.Equal(t, "/data/har", record.DataDir)
	assert.Equal(t, int64(42), record.Seed)
	assert.InDelta(t, 0.98, record.Percentile, 1e-9)
	assert.InDelta(t, 0.7, record.TrainFraction, 1e-9)
	assert.Equal(t, int32(100), record.PadSize)
	assert.Equal(t, int32(12), record.TrainRows)
	assert.Equal(t, int32(4), record.TestRows)
	assert.Equal(t, int32(6), record.ClassCount)
	require.NotNil(t, record.EndTime)
	assert.True(t, record.EndTime.After(record.StartTime))
	require.NotNil(t, record.RunDurationMs)
	assert.Equal(t, int32(1500), *record.RunDurationMs)
	require.NotNil(t, record.ConfigParams)
	assert.Contains(t, *record.ConfigParams, `"seed":42`)
}

func TestStore_ListRunsOrderAndLimit(t *testing.T) {
	store := newSQLiteStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.BeginRun(time.Now().UTC(), "/data", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := store.ListRuns(3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first
	assert.Equal(t, ids[4], records[0].RunID)
	assert.Equal(t, ids[3], records[1].RunID)
	assert.Equal(t, ids[2], records[2].RunID)

	// Unfinished runs have no end time
	assert.Nil(t, records[0].EndTime)
	assert.Nil(t, records[0].RunDurationMs)
}

func TestStore_GetStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	runID, err := store.BeginRun(time.Now().UTC(), "/data", nil)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
}

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrateRuns_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Migrate to latest
	err := MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Idempotent
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Down to version 1, then back up
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
}
