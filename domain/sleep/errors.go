package sleep

import "errors"

// Sentinel errors for input validation. Callers wrap these with file
// identity before surfacing them.
var (
	// ErrNoData is returned for an empty sample sequence.
	ErrNoData = errors.New("recording contains no samples")

	// ErrMissingStageColumn is returned when the required sleepStage column is absent.
	ErrMissingStageColumn = errors.New("input is missing the sleepStage column")

	// ErrMissingTimestampColumn is returned when a caller needs timestamps and none exist.
	ErrMissingTimestampColumn = errors.New("input is missing the Timestamp column")

	// ErrInvalidStage is returned for stage codes outside {1,2,3}.
	ErrInvalidStage = errors.New("invalid sleep stage code")
)
