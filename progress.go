package repack

// ProgressEvent is a progress update for one conversion job.
type ProgressEvent struct {
	// JobID uniquely identifies the conversion job.
	JobID string

	// Stage identifies the current phase of the job.
	Stage Stage

	// Percent is the overall completion percentage. It is monotonically
	// non-decreasing within a job and reaches 100 only on success.
	Percent float64
}

// Stage identifies a phase of the conversion pipeline.
type Stage uint8

const (
	// StagePending indicates the job has been accepted but no work has started.
	StagePending Stage = iota

	// StageAnalyzing indicates source checksumming and member extraction.
	StageAnalyzing

	// StageDeduplicating indicates duplicate-content elimination. Skipped
	// when deduplication is disabled.
	StageDeduplicating

	// StageConverting indicates framing, compression, and integrity checks.
	StageConverting

	// StageCompleted indicates the job finished successfully.
	StageCompleted

	// StageError indicates the job terminated with an error.
	StageError
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageAnalyzing:
		return "analyzing"
	case StageDeduplicating:
		return "deduplicating"
	case StageConverting:
		return "converting"
	case StageCompleted:
		return "completed"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during conversion.
// Implementations must be safe for concurrent calls when a Converter runs
// multiple jobs at once.
type ProgressFunc func(ProgressEvent)
