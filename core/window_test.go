package core

import (
	"testing"

	"github.com/huangsam/tensorprep/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeObservation builds an observation of the given length whose motion x
// channel holds the sample index, making positions traceable after windowing.
func makeObservation(id, activityID, subjectID, length int) schema.Observation {
	data := make([]schema.Sample, length)
	for i := range data {
		data[i] = schema.Sample{float64(i), 0, 0, 0, 0, 0}
	}
	return schema.Observation{
		ID:         id,
		ActivityID: activityID,
		SubjectID:  subjectID,
		Data:       data,
	}
}

func observationsWithLengths(lengths ...int) []schema.Observation {
	obs := make([]schema.Observation, len(lengths))
	for i, n := range lengths {
		obs[i] = makeObservation(i, 1, 1, n)
	}
	return obs
}

// TestComputePadSize covers the percentile-based pad sizing.
func TestComputePadSize(t *testing.T) {
	tests := []struct {
		name       string
		lengths    []int
		percentile float64
		expected   int
	}{
		{
			name:       "high percentile keeps the max",
			lengths:    []int{40, 60, 100},
			percentile: 0.98,
			expected:   100,
		},
		{
			name:       "median of odd set",
			lengths:    []int{10, 20, 30},
			percentile: 0.5,
			expected:   20,
		},
		{
			name:       "single observation",
			lengths:    []int{42},
			percentile: 0.98,
			expected:   42,
		},
		{
			name:       "full percentile is the max",
			lengths:    []int{5, 9, 7},
			percentile: 1.0,
			expected:   9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePadSize(observationsWithLengths(tt.lengths...), tt.percentile)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestComputePadSize_Monotonic checks that a higher percentile never yields
// a smaller pad size.
func TestComputePadSize_Monotonic(t *testing.T) {
	obs := observationsWithLengths(12, 80, 33, 95, 7, 61, 50, 44)

	prev := 0
	for _, p := range []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.98, 1.0} {
		got, err := ComputePadSize(obs, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "percentile %g", p)
		prev = got
	}
}

// TestComputePadSize_Errors rejects empty inputs and out-of-range percentiles.
func TestComputePadSize_Errors(t *testing.T) {
	_, err := ComputePadSize(nil, 0.98)
	assert.Error(t, err)

	obs := observationsWithLengths(10)
	for _, p := range []float64{0, -0.5, 1.01} {
		_, err := ComputePadSize(obs, p)
		assert.Error(t, err, "percentile %g", p)
	}
}

// TestToTensor_Shape checks the output tensor dimensions.
func TestToTensor_Shape(t *testing.T) {
	obs := observationsWithLengths(3, 10, 7)
	tensor := ToTensor(obs, 7, schema.HeadSide)

	require.Len(t, tensor, 3)
	for i, window := range tensor {
		require.Len(t, window, 7, "observation %d", i)
		for _, row := range window {
			require.Len(t, row, schema.ChannelCount)
		}
	}
}

// TestToTensor_ExactLength leaves an observation of exactly padSize intact.
func TestToTensor_ExactLength(t *testing.T) {
	obs := observationsWithLengths(4)
	tensor := ToTensor(obs, 4, schema.HeadSide)

	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(i), tensor[0][i][0])
	}
}

// TestToTensor_TruncateHead keeps the most recent samples when dropping
// from the head, and the earliest when dropping from the tail.
func TestToTensor_TruncateHead(t *testing.T) {
	obs := observationsWithLengths(10)

	head := ToTensor(obs, 4, schema.HeadSide)
	// Samples 6..9 survive
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(6+i), head[0][i][0])
	}

	tail := ToTensor(obs, 4, schema.TailSide)
	// Samples 0..3 survive
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(i), tail[0][i][0])
	}
}

// TestToTensor_Padding zero-fills on the truncation side so data and
// padding never mix positions.
func TestToTensor_Padding(t *testing.T) {
	obs := observationsWithLengths(3)
	// Make the data distinguishable from zero padding
	for i := range obs[0].Data {
		obs[0].Data[i][0] = float64(i + 1)
	}

	head := ToTensor(obs, 5, schema.HeadSide)
	// Two zero rows, then samples 1..3
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, head[0][0])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, head[0][1])
	assert.Equal(t, 1.0, head[0][2][0])
	assert.Equal(t, 3.0, head[0][4][0])

	tail := ToTensor(obs, 5, schema.TailSide)
	// Samples 1..3, then two zero rows
	assert.Equal(t, 1.0, tail[0][0][0])
	assert.Equal(t, 3.0, tail[0][2][0])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, tail[0][3])
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, tail[0][4])
}

// TestBuildDataset keeps X and Y rows aligned with the input order.
func TestBuildDataset(t *testing.T) {
	obs := []schema.Observation{
		makeObservation(0, 1, 10, 5),
		makeObservation(1, 3, 20, 8),
		makeObservation(2, 2, 10, 3),
	}

	ds, err := BuildDataset(obs, 6, 1, 3, schema.HeadSide)
	require.NoError(t, err)

	require.Len(t, ds.X, 3)
	require.Len(t, ds.Y, 3)
	assert.Equal(t, []int{0, 1, 2}, ds.ObservationIDs)
	assert.Equal(t, []int{10, 20, 10}, ds.SubjectIDs)
	assert.Equal(t, []int{1, 3, 2}, ds.ActivityIDs)
	assert.Equal(t, 6, ds.PadSize)
	assert.Equal(t, 3, ds.ClassCount)
	assert.Equal(t, 1, ds.Offset)

	// Activity 3 with offset 1 is class 2
	assert.Equal(t, []float64{0, 0, 1}, ds.Y[1])
}

// TestBuildDataset_EncodingError propagates unencodable activity ids.
func TestBuildDataset_EncodingError(t *testing.T) {
	obs := []schema.Observation{makeObservation(0, 9, 1, 5)}

	_, err := BuildDataset(obs, 6, 1, 3, schema.HeadSide)
	var encErr *schema.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 9, encErr.ActivityID)
}
