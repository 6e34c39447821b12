// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/tensorprep/schema"
)

// RunStore defines the interface for tracking prepare runs.
// This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, dataDir string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, summary *schema.PrepareSummary) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.RunStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
