// Package segment implements the sleep-stage consolidation pipeline: packet
// detection, gap-tolerant episode merging for REM and NREM, wake derivation,
// and the final per-sample relabeling.
//
// The pipeline is a strictly ordered two-phase computation: REM episodes are
// merged first and claim their samples; NREM episodes are merged only from
// packet samples not claimed by REM. Each stage is a pure function over the
// full sequence, threading flag arrays forward explicitly.
package segment

import "somnoseg/domain/sleep"

// ScanRuns returns the maximal contiguous runs of the wanted stage as
// half-open [Start, End) intervals, in sequence order. A run touching the
// final sample is closed like any other run.
func ScanRuns(stages []sleep.Stage, want sleep.Stage) []sleep.Interval {
	var runs []sleep.Interval
	start := -1
	for i, s := range stages {
		if s == want {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, sleep.Interval{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, sleep.Interval{Start: start, End: len(stages)})
	}
	return runs
}

// scanFlagRuns returns the maximal contiguous runs where eligible is true.
func scanFlagRuns(eligible []bool) []sleep.Interval {
	var runs []sleep.Interval
	start := -1
	for i, ok := range eligible {
		if ok {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, sleep.Interval{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, sleep.Interval{Start: start, End: len(eligible)})
	}
	return runs
}

// markIntervals sets flags[i] for every sample covered by the intervals.
func markIntervals(flags []bool, intervals []sleep.Interval) {
	for _, iv := range intervals {
		for i := iv.Start; i < iv.End; i++ {
			flags[i] = true
		}
	}
}
