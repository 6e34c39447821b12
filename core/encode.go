package core

import (
	"fmt"

	"github.com/huangsam/tensorprep/schema"
)

// EncodeLabels one-hot encodes raw activity ids into a (len(activityIDs),
// classCount) matrix. The offset (the smallest retained raw id) is
// subtracted first so the retained identifiers become zero-based class
// indices. An id that falls outside [0, classCount) after subtraction is an
// EncodingError.
func EncodeLabels(activityIDs []int, offset, classCount int) ([][]float64, error) {
	if classCount <= 0 {
		return nil, fmt.Errorf("class count must be positive, got %d", classCount)
	}
	encoded := make([][]float64, len(activityIDs))
	for i, id := range activityIDs {
		class := id - offset
		if class < 0 || class >= classCount {
			return nil, &schema.EncodingError{ActivityID: id, Offset: offset, ClassCount: classCount}
		}
		row := make([]float64, classCount)
		row[class] = 1
		encoded[i] = row
	}
	return encoded, nil
}

// DecodeLabel recovers the raw activity id from one one-hot row. A row
// without exactly one 1 is malformed.
func DecodeLabel(row []float64, offset int) (int, error) {
	class := -1
	for i, v := range row {
		switch v {
		case 0:
			continue
		case 1:
			if class >= 0 {
				return 0, fmt.Errorf("one-hot row has more than one active class")
			}
			class = i
		default:
			return 0, fmt.Errorf("one-hot row has non-binary value %g at index %d", v, i)
		}
	}
	if class < 0 {
		return 0, fmt.Errorf("one-hot row has no active class")
	}
	return class + offset, nil
}
