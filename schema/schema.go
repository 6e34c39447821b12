// Package schema has configs, models and global variables for all parts of tensorprep.
package schema

import "time"

// ChannelCount is the number of scalar signal streams per sample:
// three motion axes followed by three rotation axes.
const ChannelCount = 6

// Sample is one 6-channel reading, aligned row-for-row across the motion
// and rotation files of a recording.
type Sample [ChannelCount]float64

// LabeledInterval describes one labeled time range within a recording.
// StartSample and EndSample are inclusive sample indices.
type LabeledInterval struct {
	ExperimentID int // Experiment number embedded in the signal file names
	SubjectID    int // Subject (user) number embedded in the signal file names
	ActivityID   int // Raw activity identifier from the label table
	StartSample  int // First sample index of the event (inclusive)
	EndSample    int // Last sample index of the event (inclusive)
}

// Recording is the row-aligned join of the motion and rotation signal files
// for one (experiment, subject) pair. Read-only once loaded.
type Recording struct {
	ExperimentID int
	SubjectID    int
	Samples      []Sample
}

// Observation is one labeled, variable-length slice of a recording.
// Immutable once created; IDs are assigned sequentially after activity
// filtering so that tensor rows can be traced back to their source.
type Observation struct {
	ID           int
	ActivityID   int
	ActivityName string
	SubjectID    int
	ExperimentID int
	Data         []Sample
}

// Length returns the number of samples in the observation.
func (o *Observation) Length() int {
	return len(o.Data)
}

// Dataset is one tensorized split: X has shape (len(Observations), PadSize,
// ChannelCount) and Y has shape (len(Observations), ClassCount). Row i of X
// and row i of Y describe the same observation.
type Dataset struct {
	X [][][]float64
	Y [][]float64

	// ObservationIDs maps tensor row index back to Observation.ID.
	ObservationIDs []int
	// SubjectIDs maps tensor row index back to the source subject.
	SubjectIDs []int
	// ActivityIDs holds the raw (un-offset) activity id per row.
	ActivityIDs []int

	PadSize    int
	ClassCount int
	// Offset is subtracted from raw activity ids to obtain class indices.
	Offset int
}

// SplitAssignment partitions subject ids into disjoint train and test sets.
// Observations inherit their split from their subject, never individually.
type SplitAssignment struct {
	TrainSubjects []int
	TestSubjects  []int
}

// IsTrain reports whether the subject belongs to the training split.
func (s *SplitAssignment) IsTrain(subjectID int) bool {
	for _, id := range s.TrainSubjects {
		if id == subjectID {
			return true
		}
	}
	return false
}

// LengthStats summarizes the sample-count distribution of observations for
// one activity class.
type LengthStats struct {
	ActivityID   int
	ActivityName string
	Count        int
	MinLength    int
	MaxLength    int
	MeanLength   float64
	P50Length    int
	PctLength    int // length at the configured percentile
}

// PrepareSummary captures the outcome of one prepare run for reporting.
type PrepareSummary struct {
	DataDir        string
	Recordings     int
	Observations   int
	TrainRows      int
	TestRows       int
	PadSize        int
	ClassCount     int
	Offset         int
	Percentile     float64
	TrainFraction  float64
	Seed           int64
	TrainSubjects  []int
	TestSubjects   []int
	ActivityCounts []LengthStats
	OutDir         string
}

// CheckViolation is one integrity failure found by the check command.
type CheckViolation struct {
	Kind         string // error taxonomy name, e.g. "alignment"
	ExperimentID int
	SubjectID    int
	Detail       string
}

// CheckResult is the outcome of a dataset integrity check.
type CheckResult struct {
	Passed     bool
	Recordings int
	Intervals  int
	Violations []CheckViolation
}

// RunRecord represents a row from the tensorprep_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	DataDir       string
	Seed          int64
	Percentile    float64
	TrainFraction float64
	PadSize       int32
	TrainRows     int32
	TestRows      int32
	ClassCount    int32
	ConfigParams  *string
}

// RunStoreStatus represents the status of the run-tracking store.
type RunStoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}
