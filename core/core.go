// Package core has the pipeline logic: label parsing, signal loading,
// observation extraction, windowing, label encoding and split partitioning.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/tensorprep/internal/contract"
	"github.com/huangsam/tensorprep/internal/outwriter"
	"github.com/huangsam/tensorprep/internal/tensorio"
	"github.com/huangsam/tensorprep/schema"
)

func labelPath(dataDir string) string {
	return filepath.Join(dataDir, LabelIndexFile)
}

func activityNamesPath(dataDir string) string {
	return filepath.Join(dataDir, ActivityNamesFile)
}

// loadObservations runs the shared front half of the pipeline: label index,
// activity names, extraction, allow-list filtering.
func loadObservations(cfg *contract.Config) ([]schema.Observation, error) {
	index, err := ParseLabelIndex(labelPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	names, err := ParseActivityNames(activityNamesPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	observations, err := ExtractObservations(cfg.DataDir, index, names, cfg.ActivityIDs, cfg.Workers)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, errors.New("no observations found for the configured activity allow-list")
	}
	return observations, nil
}

// GetPrepareResults runs the full pipeline: extract observations, partition
// subjects, size the pad from the training split, tensorize both splits and
// export Parquet artifacts. It returns the run summary without printing it.
func GetPrepareResults(cfg *contract.Config, store contract.RunStore) (*schema.PrepareSummary, error) {
	start := time.Now()

	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	if store != nil {
		configParams := map[string]any{
			"percentile":     cfg.Percentile,
			"train_fraction": cfg.TrainFraction,
			"seed":           cfg.Seed,
			"truncate_from":  string(cfg.TruncateFrom),
			"activities":     contract.FormatIntList(cfg.ActivityIDs),
			"workers":        cfg.Workers,
		}
		var err error
		runID, err = store.BeginRun(start, cfg.DataDir, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 1. Extraction ---
	observations, err := loadObservations(cfg)
	if err != nil {
		return nil, err
	}

	// --- 2. Subject-level split ---
	subjects := make([]int, 0, len(observations))
	for i := range observations {
		subjects = append(subjects, observations[i].SubjectID)
	}
	split, err := PartitionSubjects(subjects, cfg.TrainFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	trainObs, testObs := SplitObservations(observations, split)
	if len(trainObs) == 0 {
		return nil, errors.New("training split is empty; adjust train-fraction or seed")
	}

	// --- 3. Pad size from the training distribution only ---
	padSize, err := ComputePadSize(trainObs, cfg.Percentile)
	if err != nil {
		return nil, err
	}

	// --- 4. Tensorization, train and test with the same pad size ---
	offset := cfg.ActivityOffset()
	classCount := cfg.ClassCount()
	trainDS, err := BuildDataset(trainObs, padSize, offset, classCount, cfg.TruncateFrom)
	if err != nil {
		return nil, err
	}
	testDS, err := BuildDataset(testObs, padSize, offset, classCount, cfg.TruncateFrom)
	if err != nil {
		return nil, err
	}

	// --- 5. Export ---
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = filepath.Join(cfg.DataDir, "tensors")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}
	if err := tensorio.WriteSplit(outDir, schema.TrainSplit, trainDS); err != nil {
		return nil, err
	}
	if err := tensorio.WriteSplit(outDir, schema.TestSplit, testDS); err != nil {
		return nil, err
	}

	summary := &schema.PrepareSummary{
		DataDir:        cfg.DataDir,
		Recordings:     countRecordings(observations),
		Observations:   len(observations),
		TrainRows:      len(trainObs),
		TestRows:       len(testObs),
		PadSize:        padSize,
		ClassCount:     classCount,
		Offset:         offset,
		Percentile:     cfg.Percentile,
		TrainFraction:  cfg.TrainFraction,
		Seed:           cfg.Seed,
		TrainSubjects:  split.TrainSubjects,
		TestSubjects:   split.TestSubjects,
		ActivityCounts: ComputeLengthStats(observations, cfg.Percentile),
		OutDir:         outDir,
	}
	if err := tensorio.WriteManifest(outDir, summary); err != nil {
		return nil, err
	}

	// --- 6. End run tracking ---
	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), summary); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return summary, nil
}

// GetLengthResults reports the observation length distribution per activity.
func GetLengthResults(cfg *contract.Config) ([]schema.LengthStats, map[string][]int, error) {
	observations, err := loadObservations(cfg)
	if err != nil {
		return nil, nil, err
	}
	return ComputeLengthStats(observations, cfg.Percentile), LengthsByActivity(observations), nil
}

// GetCheckResults validates dataset integrity and returns all violations.
func GetCheckResults(cfg *contract.Config) (*schema.CheckResult, error) {
	return CheckDataset(cfg.DataDir, cfg.Workers)
}

// ExecutePrepare runs the pipeline and prints the summary.
// It serves as the main entry point for the 'prepare' command.
func ExecutePrepare(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()

	if cfg.Output == schema.TextOut {
		outwriter.PrintPrepareHeader(cfg)
	}

	summary, err := GetPrepareResults(cfg, store)
	if err != nil {
		return err
	}
	return outwriter.WritePrepareSummary(summary, cfg, time.Since(start))
}

// ExecuteLengths reports the observation length distribution per activity.
// It serves as the main entry point for the 'lengths' command.
func ExecuteLengths(cfg *contract.Config) error {
	start := time.Now()

	stats, byActivity, err := GetLengthResults(cfg)
	if err != nil {
		return err
	}

	if cfg.ChartFile != "" {
		if err := outwriter.WriteLengthChart(byActivity, cfg.ChartFile); err != nil {
			return fmt.Errorf("cannot write length chart: %w", err)
		}
	}
	return outwriter.WriteLengthReport(stats, cfg, time.Since(start))
}

// ExecuteCheck validates dataset integrity and reports violations.
// It returns an error when the check fails so the CLI can gate CI runs.
func ExecuteCheck(cfg *contract.Config) error {
	start := time.Now()

	result, err := GetCheckResults(cfg)
	if err != nil {
		return err
	}
	if err := outwriter.WriteCheckResult(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%d violation(s) found", len(result.Violations))
	}
	return nil
}

// countRecordings counts the distinct (experiment, subject) pairs that
// contributed observations.
func countRecordings(observations []schema.Observation) int {
	seen := make(map[recordingKey]struct{})
	for i := range observations {
		o := &observations[i]
		seen[recordingKey{o.ExperimentID, o.SubjectID}] = struct{}{}
	}
	return len(seen)
}
