package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/huangsam/tensorprep/schema"
	"gonum.org/v1/gonum/stat"
)

// ComputePadSize returns the target sequence length for tensorization: the
// percentile-th value of the per-observation length distribution, rounded up
// to the nearest integer.
//
// A percentile below 1 keeps one extreme-length outlier from forcing
// excessive padding on every other observation. The empirical quantile is
// monotonically non-decreasing in the percentile, and the result is
// deterministic for a fixed observation set.
//
// Pad size must be computed from the training split only and reused
// unchanged for the evaluation split; the caller owns that discipline.
func ComputePadSize(observations []schema.Observation, percentile float64) (int, error) {
	if len(observations) == 0 {
		return 0, fmt.Errorf("cannot compute pad size from an empty observation set")
	}
	if percentile <= 0 || percentile > 1 {
		return 0, fmt.Errorf("percentile must be in (0, 1], got %g", percentile)
	}
	lengths := make([]float64, len(observations))
	for i := range observations {
		lengths[i] = float64(observations[i].Length())
	}
	sort.Float64s(lengths)
	q := stat.Quantile(percentile, stat.Empirical, lengths, nil)
	return int(math.Ceil(q)), nil
}

// ToTensor converts observations into a fixed-shape numeric tensor of shape
// (len(observations), padSize, schema.ChannelCount), preserving input order.
//
// With truncateFrom == HeadSide (the convention of the sequence-padding
// utilities that training frameworks ship), an observation longer than
// padSize keeps only its last padSize samples, and a shorter one is
// prepended with zero samples. TailSide mirrors both operations: keep the
// head, append zeros.
func ToTensor(observations []schema.Observation, padSize int, truncateFrom schema.TruncateSide) [][][]float64 {
	tensor := make([][][]float64, len(observations))
	for i := range observations {
		tensor[i] = windowSamples(observations[i].Data, padSize, truncateFrom)
	}
	return tensor
}

// windowSamples produces one fixed-length (padSize, ChannelCount) window.
func windowSamples(data []schema.Sample, padSize int, truncateFrom schema.TruncateSide) [][]float64 {
	window := make([][]float64, padSize)
	for r := range window {
		window[r] = make([]float64, schema.ChannelCount)
	}

	if len(data) >= padSize {
		var kept []schema.Sample
		if truncateFrom == schema.TailSide {
			kept = data[:padSize]
		} else {
			kept = data[len(data)-padSize:]
		}
		for r, sample := range kept {
			copy(window[r], sample[:])
		}
		return window
	}

	// Shorter than padSize: zero rows fill the truncation side.
	offset := padSize - len(data)
	if truncateFrom == schema.TailSide {
		offset = 0
	}
	for r, sample := range data {
		copy(window[offset+r], sample[:])
	}
	return window
}

// BuildDataset tensorizes one split: windows every observation to padSize
// and one-hot encodes its activity label. Row i of X and row i of Y always
// describe the same observation, in input order.
func BuildDataset(observations []schema.Observation, padSize, offset, classCount int, truncateFrom schema.TruncateSide) (*schema.Dataset, error) {
	activityIDs := make([]int, len(observations))
	observationIDs := make([]int, len(observations))
	subjectIDs := make([]int, len(observations))
	for i := range observations {
		activityIDs[i] = observations[i].ActivityID
		observationIDs[i] = observations[i].ID
		subjectIDs[i] = observations[i].SubjectID
	}

	y, err := EncodeLabels(activityIDs, offset, classCount)
	if err != nil {
		return nil, err
	}

	return &schema.Dataset{
		X:              ToTensor(observations, padSize, truncateFrom),
		Y:              y,
		ObservationIDs: observationIDs,
		SubjectIDs:     subjectIDs,
		ActivityIDs:    activityIDs,
		PadSize:        padSize,
		ClassCount:     classCount,
		Offset:         offset,
	}, nil
}
