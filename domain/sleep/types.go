package sleep

import (
	"fmt"
	"math"
	"time"
)

// Stage is a per-sample sleep stage code as produced by upstream scoring.
type Stage int

const (
	Wake Stage = 1
	NREM Stage = 2
	REM  Stage = 3
)

// String returns the conventional stage name
func (s Stage) String() string {
	switch s {
	case Wake:
		return "Wake"
	case NREM:
		return "NREM"
	case REM:
		return "REM"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Valid reports whether the code is one of the three known stages
func (s Stage) Valid() bool {
	return s == Wake || s == NREM || s == REM
}

// StageFromFloat coerces an upstream float score to a Stage by rounding to
// the nearest integer. Scorers emit fractional codes near the integer
// values; anything that does not round into {1,2,3} is rejected.
func StageFromFloat(v float64) (Stage, error) {
	s := Stage(int(math.Round(v)))
	if !s.Valid() {
		return 0, fmt.Errorf("%w: value %v does not round to 1, 2 or 3", ErrInvalidStage, v)
	}
	return s, nil
}

// Interval is a half-open index range [Start, End) over a sample sequence.
type Interval struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the interval
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Contains reports whether sample index i falls inside the interval
func (iv Interval) Contains(i int) bool {
	return i >= iv.Start && i < iv.End
}

// Bout is a maximal contiguous run of one raw stage value.
type Bout struct {
	Interval
	Stage Stage
}

// Episode is a merged, gap-tolerant union of same-stage runs. Samples of
// other stages swallowed by a merge belong to the episode.
type Episode struct {
	Interval
	Stage Stage
}

// Recording is one subject's annotated time series. Timestamps and Extra
// columns are carried through transformations untouched; the segmentation
// core reads only Stages.
type Recording struct {
	Timestamps   []time.Time
	Stages       []Stage
	Consolidated []Stage

	// Extra preserves passthrough columns by header, in original row order.
	Extra        map[string][]string
	ExtraHeaders []string

	// Source identifies the originating file for error reporting.
	Source string
}

// Len returns the number of samples in the recording
func (r *Recording) Len() int {
	return len(r.Stages)
}

// HasTimestamps reports whether a timestamp column was present on load
func (r *Recording) HasTimestamps() bool {
	return len(r.Timestamps) == len(r.Stages) && len(r.Timestamps) > 0
}

// Validate checks the structural invariants a loaded recording must hold.
func (r *Recording) Validate() error {
	if len(r.Stages) == 0 {
		return ErrNoData
	}
	for i, s := range r.Stages {
		if !s.Valid() {
			return fmt.Errorf("%w: sample %d has stage code %d", ErrInvalidStage, i, int(s))
		}
	}
	if len(r.Timestamps) != 0 && len(r.Timestamps) != len(r.Stages) {
		return fmt.Errorf("timestamp column has %d rows, stage column has %d", len(r.Timestamps), len(r.Stages))
	}
	return nil
}
