package core

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/tensorprep/schema"
)

// Well-known file names inside the dataset directory.
const (
	LabelIndexFile    = "labels.txt"
	ActivityNamesFile = "activity_labels.txt"
)

// recordingKey identifies one (experiment, subject) pair.
type recordingKey struct {
	ExperimentID int
	SubjectID    int
}

// LabelIndex holds the parsed interval table and answers per-recording
// queries. Read-only once built.
type LabelIndex struct {
	intervals []schema.LabeledInterval
	byPair    map[recordingKey][]schema.LabeledInterval
}

// ParseLabelIndex reads the global interval table. Each row must have
// exactly 5 integer fields: experiment, subject, activity, start, end.
// Blank lines are skipped; anything else malformed is a ParseError.
func ParseLabelIndex(path string) (*LabelIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &schema.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("cannot open label index: %w", err)
	}
	defer func() { _ = f.Close() }()

	ix := &LabelIndex{byPair: make(map[recordingKey][]schema.LabeledInterval)}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("expected 5 fields, got %d", len(fields)),
			}
		}
		nums := make([]int, 5)
		for i, field := range fields {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, &schema.ParseError{
					Path: path, Line: lineNo,
					Msg: fmt.Sprintf("field %d is not an integer: %q", i+1, field),
				}
			}
			nums[i] = n
		}
		iv := schema.LabeledInterval{
			ExperimentID: nums[0],
			SubjectID:    nums[1],
			ActivityID:   nums[2],
			StartSample:  nums[3],
			EndSample:    nums[4],
		}
		if iv.StartSample > iv.EndSample {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("startSample %d exceeds endSample %d", iv.StartSample, iv.EndSample),
			}
		}
		if iv.StartSample < 0 {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("negative startSample %d", iv.StartSample),
			}
		}
		ix.intervals = append(ix.intervals, iv)
		key := recordingKey{iv.ExperimentID, iv.SubjectID}
		ix.byPair[key] = append(ix.byPair[key], iv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read label index: %w", err)
	}
	return ix, nil
}

// IntervalsFor returns the intervals recorded for one (experiment, subject)
// pair, in table order.
func (ix *LabelIndex) IntervalsFor(experimentID, subjectID int) []schema.LabeledInterval {
	return ix.byPair[recordingKey{experimentID, subjectID}]
}

// All returns every interval in table order.
func (ix *LabelIndex) All() []schema.LabeledInterval {
	return ix.intervals
}

// Pairs returns the distinct (experiment, subject) pairs referenced by the
// index, sorted by experiment then subject so downstream processing is
// deterministic regardless of map iteration order.
func (ix *LabelIndex) Pairs() []recordingKey {
	pairs := make([]recordingKey, 0, len(ix.byPair))
	for key := range ix.byPair {
		pairs = append(pairs, key)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ExperimentID != pairs[j].ExperimentID {
			return pairs[i].ExperimentID < pairs[j].ExperimentID
		}
		return pairs[i].SubjectID < pairs[j].SubjectID
	})
	return pairs
}

// ParseActivityNames reads the activity-label lookup table. Each row is an
// integer id followed by the activity name; names with spaces keep their
// remaining fields joined by underscores already in the source, so a row
// with more than 2 fields is malformed.
func ParseActivityNames(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &schema.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("cannot open activity names: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := make(map[int]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("expected 2 fields, got %d", len(fields)),
			}
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &schema.ParseError{
				Path: path, Line: lineNo,
				Msg: fmt.Sprintf("activity id is not an integer: %q", fields[0]),
			}
		}
		names[id] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read activity names: %w", err)
	}
	return names, nil
}
