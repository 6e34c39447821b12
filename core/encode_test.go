package core

import (
	"testing"

	"github.com/huangsam/tensorprep/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeLabels one-hot encodes offset-shifted activity ids.
func TestEncodeLabels(t *testing.T) {
	encoded, err := EncodeLabels([]int{1, 3, 2, 1}, 1, 3)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{
		{1, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
		{1, 0, 0},
	}, encoded)
}

// TestEncodeLabels_NonZeroOffset handles allow-lists that do not start at 1.
func TestEncodeLabels_NonZeroOffset(t *testing.T) {
	encoded, err := EncodeLabels([]int{7, 9, 8}, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, encoded[0])
	assert.Equal(t, []float64{0, 0, 1}, encoded[1])
	assert.Equal(t, []float64{0, 1, 0}, encoded[2])
}

// TestEncodeLabels_OutOfRange rejects ids outside the encodable range.
func TestEncodeLabels_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		id   int
	}{
		{name: "below offset", id: 0},
		{name: "beyond class count", id: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeLabels([]int{tt.id}, 1, 3)
			var encErr *schema.EncodingError
			require.ErrorAs(t, err, &encErr)
			assert.Equal(t, tt.id, encErr.ActivityID)
		})
	}
}

// TestEncodeLabels_BadClassCount rejects non-positive class counts.
func TestEncodeLabels_BadClassCount(t *testing.T) {
	_, err := EncodeLabels([]int{1}, 1, 0)
	assert.Error(t, err)
}

// TestEncodeDecodeRoundTrip recovers every raw id from its one-hot row.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	ids := []int{3, 5, 4, 8, 3, 6, 7}
	offset, classCount := 3, 6

	encoded, err := EncodeLabels(ids, offset, classCount)
	require.NoError(t, err)

	for i, row := range encoded {
		got, err := DecodeLabel(row, offset)
		require.NoError(t, err)
		assert.Equal(t, ids[i], got)
	}
}

// TestDecodeLabel_Malformed rejects rows that are not strict one-hot.
func TestDecodeLabel_Malformed(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
	}{
		{name: "all zeros", row: []float64{0, 0, 0}},
		{name: "two active classes", row: []float64{1, 0, 1}},
		{name: "non-binary value", row: []float64{0, 0.5, 0}},
		{name: "empty row", row: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLabel(tt.row, 1)
			assert.Error(t, err)
		})
	}
}
