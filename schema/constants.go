package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TruncateSide represents which end of an observation is dropped when it
	// exceeds the pad size. The padding side always mirrors the truncation
	// side, so HeadSide means pad/truncate from the front and keep the tail.
	TruncateSide string

	// SignalKind distinguishes the two co-indexed channel-group files of a
	// recording.
	SignalKind string

	// SplitName identifies a train or test partition.
	SplitName string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// Truncation sides supported. HeadSide is the convention of the sequence
// padding utilities most training frameworks ship: keep the last padSize
// samples and prepend zeros.
const (
	HeadSide TruncateSide = "head" // default
	TailSide TruncateSide = "tail"
)

// The two sensor channel groups of every recording.
const (
	MotionSignal   SignalKind = "motion"
	RotationSignal SignalKind = "rotation"
)

// All split names supported.
const (
	TrainSplit SplitName = "train"
	TestSplit  SplitName = "test"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidTruncateSides lists all valid truncation sides.
var ValidTruncateSides = map[TruncateSide]struct{}{
	HeadSide: {},
	TailSide: {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultActivityIDs is the allow-list of activity classes retained by
// default. The six basic postures/movements have comparable duration
// distributions; transition activities are much shorter and are excluded so
// a single pad size fits the whole set.
var DefaultActivityIDs = []int{1, 2, 3, 4, 5, 6}
