package core

import (
	"sync"

	"github.com/huangsam/tensorprep/schema"
)

// pairResult carries the observations extracted from one recording, indexed
// so the global sequence can be reassembled deterministically.
type pairResult struct {
	idx int
	obs []schema.Observation
	err error
}

// ExtractObservations slices every recording referenced by the label index
// into labeled observations, joins activity names, applies the activity
// allow-list and assigns sequential observation ids.
//
// Recordings are independent, so they are processed on a worker pool of
// `workers` goroutines. Results are reassembled in (experiment, subject)
// order, so the output is identical for any worker count.
func ExtractObservations(dataDir string, index *LabelIndex, names map[int]string, allowed []int, workers int) ([]schema.Observation, error) {
	pairs := index.Pairs()

	pairCh := make(chan int, len(pairs))
	resultCh := make(chan pairResult, len(pairs))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for idx := range pairCh {
				key := pairs[idx]
				obs, err := extractFromRecording(dataDir, key, index.IntervalsFor(key.ExperimentID, key.SubjectID))
				resultCh <- pairResult{idx: idx, obs: obs, err: err}
			}
		})
	}

	for idx := range pairs {
		pairCh <- idx
	}
	close(pairCh)
	wg.Wait()
	close(resultCh)

	// Reassemble in pair order; report the first error by that order so the
	// failure surfaced does not depend on goroutine scheduling.
	byPair := make([][]schema.Observation, len(pairs))
	errs := make([]error, len(pairs))
	for r := range resultCh {
		byPair[r.idx] = r.obs
		errs[r.idx] = r.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	allowSet := make(map[int]struct{}, len(allowed))
	for _, id := range allowed {
		allowSet[id] = struct{}{}
	}

	var observations []schema.Observation
	for _, obs := range byPair {
		for _, o := range obs {
			name, ok := names[o.ActivityID]
			if !ok {
				return nil, &schema.UnknownActivityError{ActivityID: o.ActivityID}
			}
			if _, keep := allowSet[o.ActivityID]; !keep {
				continue
			}
			o.ActivityName = name
			o.ID = len(observations)
			observations = append(observations, o)
		}
	}
	return observations, nil
}

// extractFromRecording loads one recording and slices it per interval.
// Slices are [start, end] inclusive; an interval reaching past the end of
// the recording is an OutOfRangeError rather than a silent truncation.
func extractFromRecording(dataDir string, key recordingKey, intervals []schema.LabeledInterval) ([]schema.Observation, error) {
	rec, err := LoadRecording(dataDir, key.ExperimentID, key.SubjectID)
	if err != nil {
		return nil, err
	}

	observations := make([]schema.Observation, 0, len(intervals))
	for _, iv := range intervals {
		if iv.EndSample >= len(rec.Samples) {
			return nil, &schema.OutOfRangeError{Interval: iv, RecordingLen: len(rec.Samples)}
		}
		data := make([]schema.Sample, iv.EndSample-iv.StartSample+1)
		copy(data, rec.Samples[iv.StartSample:iv.EndSample+1])
		observations = append(observations, schema.Observation{
			ActivityID:   iv.ActivityID,
			SubjectID:    iv.SubjectID,
			ExperimentID: iv.ExperimentID,
			Data:         data,
		})
	}
	return observations, nil
}
