package segment

import (
	"testing"

	"somnoseg/domain/sleep"
)

// seq builds a stage sequence from integer codes
func seq(codes ...int) []sleep.Stage {
	stages := make([]sleep.Stage, len(codes))
	for i, c := range codes {
		stages[i] = sleep.Stage(c)
	}
	return stages
}

// block appends n copies of stage to the sequence
func block(stages []sleep.Stage, stage sleep.Stage, n int) []sleep.Stage {
	for i := 0; i < n; i++ {
		stages = append(stages, stage)
	}
	return stages
}

func TestScanRuns_FindsMaximalRuns(t *testing.T) {
	stages := seq(1, 2, 2, 2, 1, 2, 2, 3)
	runs := ScanRuns(stages, sleep.NREM)

	if len(runs) != 2 {
		t.Fatalf("expected 2 NREM runs, got %d", len(runs))
	}
	if runs[0] != (sleep.Interval{Start: 1, End: 4}) {
		t.Errorf("first run = %+v, want [1,4)", runs[0])
	}
	if runs[1] != (sleep.Interval{Start: 5, End: 7}) {
		t.Errorf("second run = %+v, want [5,7)", runs[1])
	}
}

func TestScanRuns_ClosesRunAtFinalSample(t *testing.T) {
	// A run touching the end of the sequence must be closed like any other.
	stages := seq(1, 1, 3, 3, 3)
	runs := ScanRuns(stages, sleep.REM)

	if len(runs) != 1 {
		t.Fatalf("expected 1 REM run, got %d", len(runs))
	}
	if runs[0] != (sleep.Interval{Start: 2, End: 5}) {
		t.Errorf("run = %+v, want [2,5)", runs[0])
	}
}

func TestScanRuns_NoMatches(t *testing.T) {
	stages := seq(1, 1, 1)
	if runs := ScanRuns(stages, sleep.REM); len(runs) != 0 {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestScanRuns_WholeSequenceIsOneRun(t *testing.T) {
	stages := seq(2, 2, 2, 2)
	runs := ScanRuns(stages, sleep.NREM)
	if len(runs) != 1 || runs[0].Len() != 4 {
		t.Errorf("expected one run of length 4, got %v", runs)
	}
}
