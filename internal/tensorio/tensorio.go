// Package tensorio exports prepared tensors and run history to Parquet
// files using github.com/parquet-go/parquet-go, plus a JSON manifest that
// tells the training side how to reassemble the 3D shapes.
package tensorio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/tensorprep/schema"
	"github.com/parquet-go/parquet-go"
)

// WindowRow is one sample row of a window tensor, flattened to long format:
// (observation, row) → 6 channel values. Consumers reshape to
// (observations, pad_size, 6) using the manifest.
type WindowRow struct {
	// ObservationID identifies the source observation of this row
	ObservationID int64 `parquet:"observation_id,snappy"`

	// RowIndex is the row position inside the fixed-length window [0, padSize)
	RowIndex int32 `parquet:"row_index,snappy"`

	MotionX   float64 `parquet:"motion_x,snappy"`
	MotionY   float64 `parquet:"motion_y,snappy"`
	MotionZ   float64 `parquet:"motion_z,snappy"`
	RotationX float64 `parquet:"rotation_x,snappy"`
	RotationY float64 `parquet:"rotation_y,snappy"`
	RotationZ float64 `parquet:"rotation_z,snappy"`
}

// LabelRow is the supervised target for one observation.
type LabelRow struct {
	ObservationID int64 `parquet:"observation_id,snappy"`
	SubjectID     int32 `parquet:"subject_id,snappy"`

	// ActivityID is the raw id from the label table
	ActivityID int32 `parquet:"activity_id,snappy"`

	// ClassIndex is ActivityID minus the encoding offset
	ClassIndex int32 `parquet:"class_index,snappy"`

	// OneHot has ClassCount entries with a single 1 at ClassIndex
	OneHot []float64 `parquet:"one_hot,list"`
}

// Manifest describes the exported artifacts of one prepare run.
type Manifest struct {
	GeneratedAt   time.Time          `json:"generated_at"`
	PadSize       int                `json:"pad_size"`
	ChannelCount  int                `json:"channel_count"`
	ClassCount    int                `json:"class_count"`
	Offset        int                `json:"offset"`
	Percentile    float64            `json:"percentile"`
	TrainFraction float64            `json:"train_fraction"`
	Seed          int64              `json:"seed"`
	Splits        map[string]SplitIn `json:"splits"`
}

// SplitIn describes one split inside the manifest.
type SplitIn struct {
	Windows      string `json:"windows"`
	Labels       string `json:"labels"`
	Observations int    `json:"observations"`
	Subjects     []int  `json:"subjects"`
}

// windowsFileName returns the windows artifact name for a split.
func windowsFileName(split schema.SplitName) string {
	return fmt.Sprintf("%s_windows.parquet", split)
}

// labelsFileName returns the labels artifact name for a split.
func labelsFileName(split schema.SplitName) string {
	return fmt.Sprintf("%s_labels.parquet", split)
}

// WriteSplit writes one split's window tensor and label matrix as a pair of
// Parquet files under outDir.
func WriteSplit(outDir string, split schema.SplitName, ds *schema.Dataset) error {
	windows := FlattenWindows(ds)
	if err := writeParquet(filepath.Join(outDir, windowsFileName(split)), windows); err != nil {
		return fmt.Errorf("failed to write %s windows: %w", split, err)
	}
	labels := FlattenLabels(ds)
	if err := writeParquet(filepath.Join(outDir, labelsFileName(split)), labels); err != nil {
		return fmt.Errorf("failed to write %s labels: %w", split, err)
	}
	return nil
}

// FlattenWindows converts a dataset's X tensor to long-format rows,
// preserving observation order and row order within each window.
func FlattenWindows(ds *schema.Dataset) []WindowRow {
	rows := make([]WindowRow, 0, len(ds.X)*ds.PadSize)
	for i, window := range ds.X {
		obsID := int64(ds.ObservationIDs[i])
		for r, sample := range window {
			rows = append(rows, WindowRow{
				ObservationID: obsID,
				RowIndex:      int32(r),
				MotionX:       sample[0],
				MotionY:       sample[1],
				MotionZ:       sample[2],
				RotationX:     sample[3],
				RotationY:     sample[4],
				RotationZ:     sample[5],
			})
		}
	}
	return rows
}

// FlattenLabels converts a dataset's Y matrix to label rows.
func FlattenLabels(ds *schema.Dataset) []LabelRow {
	rows := make([]LabelRow, len(ds.Y))
	for i, oneHot := range ds.Y {
		rows[i] = LabelRow{
			ObservationID: int64(ds.ObservationIDs[i]),
			SubjectID:     int32(ds.SubjectIDs[i]),
			ActivityID:    int32(ds.ActivityIDs[i]),
			ClassIndex:    int32(ds.ActivityIDs[i] - ds.Offset),
			OneHot:        oneHot,
		}
	}
	return rows
}

// WriteManifest writes the manifest.json describing the export.
func WriteManifest(outDir string, summary *schema.PrepareSummary) error {
	manifest := Manifest{
		GeneratedAt:   time.Now().UTC(),
		PadSize:       summary.PadSize,
		ChannelCount:  schema.ChannelCount,
		ClassCount:    summary.ClassCount,
		Offset:        summary.Offset,
		Percentile:    summary.Percentile,
		TrainFraction: summary.TrainFraction,
		Seed:          summary.Seed,
		Splits: map[string]SplitIn{
			string(schema.TrainSplit): {
				Windows:      windowsFileName(schema.TrainSplit),
				Labels:       labelsFileName(schema.TrainSplit),
				Observations: summary.TrainRows,
				Subjects:     summary.TrainSubjects,
			},
			string(schema.TestSplit): {
				Windows:      windowsFileName(schema.TestSplit),
				Labels:       labelsFileName(schema.TestSplit),
				Observations: summary.TestRows,
				Subjects:     summary.TestSubjects,
			},
		},
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(outDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// RunExportRow maps a schema.RunRecord for Parquet export.
type RunExportRow struct {
	RunID         int64      `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	DataDir       string     `parquet:"data_dir,snappy"`
	Seed          int64      `parquet:"seed,snappy"`
	Percentile    float64    `parquet:"percentile,snappy"`
	TrainFraction float64    `parquet:"train_fraction,snappy"`
	PadSize       int32      `parquet:"pad_size,snappy"`
	TrainRows     int32      `parquet:"train_rows,snappy"`
	TestRows      int32      `parquet:"test_rows,snappy"`
	ClassCount    int32      `parquet:"class_count,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// ConvertRunRecords converts schema.RunRecord to RunExportRow for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunExportRow {
	result := make([]RunExportRow, len(records))
	for i, record := range records {
		result[i] = RunExportRow{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			DataDir:       record.DataDir,
			Seed:          record.Seed,
			Percentile:    record.Percentile,
			TrainFraction: record.TrainFraction,
			PadSize:       record.PadSize,
			TrainRows:     record.TrainRows,
			TestRows:      record.TestRows,
			ClassCount:    record.ClassCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// WriteRunRecordsParquet writes run history to a Parquet file.
func WriteRunRecordsParquet(records []schema.RunRecord, outputPath string) error {
	return writeParquet(outputPath, ConvertRunRecords(records))
}

// writeParquet writes a slice of rows using struct schema inference.
func writeParquet[T any](outputPath string, rows []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
