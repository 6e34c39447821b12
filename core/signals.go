package core

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/tensorprep/schema"
)

// SignalFileName builds the conventional file name for one channel group of
// a recording, e.g. "motion_exp01_user05.txt".
func SignalFileName(kind schema.SignalKind, experimentID, subjectID int) string {
	return fmt.Sprintf("%s_exp%02d_user%02d.txt", kind, experimentID, subjectID)
}

// LoadRecording locates the motion and rotation files for one
// (experiment, subject) pair and zips them row-wise into 6-channel samples.
//
// Both files must exist and have the same row count. The source data keeps
// the two channel groups aligned only by row order, so a length mismatch is
// fatal (AlignmentError) instead of being silently truncated.
func LoadRecording(dataDir string, experimentID, subjectID int) (*schema.Recording, error) {
	motion, err := readSignalFile(filepath.Join(dataDir, SignalFileName(schema.MotionSignal, experimentID, subjectID)))
	if err != nil {
		return nil, err
	}
	rotation, err := readSignalFile(filepath.Join(dataDir, SignalFileName(schema.RotationSignal, experimentID, subjectID)))
	if err != nil {
		return nil, err
	}
	if len(motion) != len(rotation) {
		return nil, &schema.AlignmentError{
			ExperimentID: experimentID,
			SubjectID:    subjectID,
			MotionLen:    len(motion),
			RotationLen:  len(rotation),
		}
	}

	samples := make([]schema.Sample, len(motion))
	for i := range motion {
		samples[i] = schema.Sample{
			motion[i][0], motion[i][1], motion[i][2],
			rotation[i][0], rotation[i][1], rotation[i][2],
		}
	}
	return &schema.Recording{
		ExperimentID: experimentID,
		SubjectID:    subjectID,
		Samples:      samples,
	}, nil
}

// readSignalFile reads one whitespace-delimited 3-column numeric file.
func readSignalFile(path string) ([][3]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &schema.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("cannot open signal file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rows [][3]float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
			}
		}
		var row [3]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &schema.ParseError{
					Path: path, Line: lineNo,
					Msg: fmt.Sprintf("field %d is not numeric: %q", i+1, field),
				}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read signal file: %w", err)
	}
	return rows, nil
}
