package schema

import "fmt"

// The pipeline error taxonomy. Every error is fatal to the run: a corrupt or
// incomplete dataset must stop processing rather than silently produce
// mismatched tensors.

// ParseError reports a malformed row in a whitespace-delimited input table.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s:%d: %s", e.Path, e.Line, e.Msg)
}

// MissingFileError reports an expected signal file that is absent.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing signal file: %s", e.Path)
}

// AlignmentError reports paired channel-group files of differing length.
// The source files are joined row-for-row, so a length mismatch would
// silently corrupt every label downstream.
type AlignmentError struct {
	ExperimentID int
	SubjectID    int
	MotionLen    int
	RotationLen  int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("misaligned signal files for exp%02d/user%02d: motion has %d rows, rotation has %d",
		e.ExperimentID, e.SubjectID, e.MotionLen, e.RotationLen)
}

// OutOfRangeError reports a labeled interval that exceeds its recording.
type OutOfRangeError struct {
	Interval     LabeledInterval
	RecordingLen int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("interval [%d, %d] for exp%02d/user%02d exceeds recording length %d",
		e.Interval.StartSample, e.Interval.EndSample,
		e.Interval.ExperimentID, e.Interval.SubjectID, e.RecordingLen)
}

// UnknownActivityError reports an interval referencing an undefined activity id.
type UnknownActivityError struct {
	ActivityID int
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("unknown activity id %d: no entry in the activity label table", e.ActivityID)
}

// EncodingError reports an activity id outside the encodable range after
// offset subtraction.
type EncodingError struct {
	ActivityID int
	Offset     int
	ClassCount int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("activity id %d is outside the encodable range: id-%d must fall in [0, %d)",
		e.ActivityID, e.Offset, e.ClassCount)
}
