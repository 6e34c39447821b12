package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/huangsam/tensorprep/schema"
)

// CheckDataset validates dataset integrity without producing tensors: every
// interval's file pair exists, the pairs align row-for-row, interval bounds
// stay inside their recording and every activity id resolves to a name.
//
// Unlike prepare, which aborts on the first failure, check accumulates
// every violation so a CI gate can report the full damage in one pass.
func CheckDataset(dataDir string, workers int) (*schema.CheckResult, error) {
	index, err := ParseLabelIndex(labelPath(dataDir))
	if err != nil {
		return nil, err
	}
	names, err := ParseActivityNames(activityNamesPath(dataDir))
	if err != nil {
		return nil, err
	}

	pairs := index.Pairs()

	pairCh := make(chan int, len(pairs))
	violationCh := make(chan []schema.CheckViolation, len(pairs))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for idx := range pairCh {
				key := pairs[idx]
				violationCh <- checkRecording(dataDir, key, index.IntervalsFor(key.ExperimentID, key.SubjectID))
			}
		})
	}
	for idx := range pairs {
		pairCh <- idx
	}
	close(pairCh)
	wg.Wait()
	close(violationCh)

	var violations []schema.CheckViolation
	for vs := range violationCh {
		violations = append(violations, vs...)
	}

	// Activity ids are table-global, checked once outside the pool.
	seen := make(map[int]struct{})
	for _, iv := range index.All() {
		if _, dup := seen[iv.ActivityID]; dup {
			continue
		}
		seen[iv.ActivityID] = struct{}{}
		if _, ok := names[iv.ActivityID]; !ok {
			violations = append(violations, schema.CheckViolation{
				Kind:   "unknown-activity",
				Detail: fmt.Sprintf("activity id %d has no entry in %s", iv.ActivityID, ActivityNamesFile),
			})
		}
	}

	sortViolations(violations)
	return &schema.CheckResult{
		Passed:     len(violations) == 0,
		Recordings: len(pairs),
		Intervals:  len(index.All()),
		Violations: violations,
	}, nil
}

// checkRecording validates one recording and its intervals, converting the
// pipeline's fatal errors into reportable violations.
func checkRecording(dataDir string, key recordingKey, intervals []schema.LabeledInterval) []schema.CheckViolation {
	rec, err := LoadRecording(dataDir, key.ExperimentID, key.SubjectID)
	if err != nil {
		return []schema.CheckViolation{classifyError(key, err)}
	}

	var violations []schema.CheckViolation
	for _, iv := range intervals {
		if iv.EndSample >= len(rec.Samples) {
			violations = append(violations, schema.CheckViolation{
				Kind:         "out-of-range",
				ExperimentID: key.ExperimentID,
				SubjectID:    key.SubjectID,
				Detail:       fmt.Sprintf("interval [%d, %d] exceeds recording length %d", iv.StartSample, iv.EndSample, len(rec.Samples)),
			})
		}
	}
	return violations
}

// classifyError maps a pipeline error to its taxonomy name for reporting.
func classifyError(key recordingKey, err error) schema.CheckViolation {
	v := schema.CheckViolation{
		ExperimentID: key.ExperimentID,
		SubjectID:    key.SubjectID,
		Detail:       err.Error(),
	}

	var missing *schema.MissingFileError
	var alignment *schema.AlignmentError
	var parse *schema.ParseError
	switch {
	case errors.As(err, &missing):
		v.Kind = "missing-file"
	case errors.As(err, &alignment):
		v.Kind = "alignment"
	case errors.As(err, &parse):
		v.Kind = "parse"
	default:
		v.Kind = "io"
	}
	return v
}

// sortViolations orders violations by experiment, subject, then kind so the
// report is stable across worker counts.
func sortViolations(violations []schema.CheckViolation) {
	sort.Slice(violations, func(i, j int) bool {
		return violationLess(violations[i], violations[j])
	})
}

func violationLess(a, b schema.CheckViolation) bool {
	if a.ExperimentID != b.ExperimentID {
		return a.ExperimentID < b.ExperimentID
	}
	if a.SubjectID != b.SubjectID {
		return a.SubjectID < b.SubjectID
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Detail < b.Detail
}
