package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckDataset_Clean passes on a well-formed dataset.
func TestCheckDataset_Clean(t *testing.T) {
	b := newDatasetBuilder(t).
		withLabels("1 1 1 0 9\n2 2 2 5 14\n").
		withNames("1 WALKING\n2 SITTING\n").
		withRecording(1, 1, 20).
		withRecording(2, 2, 20)
	dir := b.build()

	result, err := CheckDataset(dir, 2)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 2, result.Recordings)
	assert.Equal(t, 2, result.Intervals)
}

// TestCheckDataset_AccumulatesViolations keeps scanning after the first
// problem and reports every violation in a stable order.
func TestCheckDataset_AccumulatesViolations(t *testing.T) {
	b := newDatasetBuilder(t).
		withLabels("1 1 1 0 9\n1 1 1 0 99\n2 2 99 0 9\n3 3 1 0 9\n4 4 1 0 9\n").
		withNames("1 WALKING\n").
		withRecording(1, 1, 20). // second interval out of range
		withRecording(2, 2, 20). // unknown activity (table-global)
		withRecording(4, 4, 20)  // exp03 files missing entirely
	dir := b.build()

	// Misalign exp04 by appending one extra motion row
	motionPath := filepath.Join(dir, "motion_exp04_user04.txt")
	f, err := os.OpenFile(motionPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("1 2 3\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	result, err := CheckDataset(dir, 4)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 4)

	// Sorted by experiment, then subject, then kind; table-global
	// violations carry no experiment and sort first.
	assert.Equal(t, "unknown-activity", result.Violations[0].Kind)
	assert.Equal(t, "out-of-range", result.Violations[1].Kind)
	assert.Equal(t, 1, result.Violations[1].ExperimentID)
	assert.Equal(t, "missing-file", result.Violations[2].Kind)
	assert.Equal(t, 3, result.Violations[2].ExperimentID)
	assert.Equal(t, "alignment", result.Violations[3].Kind)
	assert.Equal(t, 4, result.Violations[3].ExperimentID)
}

// TestCheckDataset_StableAcrossWorkers produces an identical report for
// any worker count.
func TestCheckDataset_StableAcrossWorkers(t *testing.T) {
	b := newDatasetBuilder(t).
		withLabels("1 1 1 0 99\n2 2 1 0 99\n3 3 1 0 5\n").
		withNames("1 WALKING\n").
		withRecording(1, 1, 50).
		withRecording(3, 3, 10)
	dir := b.build()

	reference, err := CheckDataset(dir, 1)
	require.NoError(t, err)

	for _, workers := range []int{2, 4} {
		result, err := CheckDataset(dir, workers)
		require.NoError(t, err)
		assert.Equal(t, reference, result, "workers=%d", workers)
	}
}

// TestCheckDataset_BadLabelIndex fails outright when the index itself
// cannot be parsed; there is nothing meaningful to accumulate.
func TestCheckDataset_BadLabelIndex(t *testing.T) {
	b := newDatasetBuilder(t).
		withLabels("not a valid row\n").
		withNames("1 WALKING\n")
	dir := b.build()

	_, err := CheckDataset(dir, 1)
	assert.Error(t, err)
}
