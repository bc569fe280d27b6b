package segment

import (
	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

// DetectPackets flags every sample belonging to a maximal contiguous NREM run
// of at least minPacketLen samples. Shorter NREM runs are treated as scoring
// noise and left unflagged.
func DetectPackets(stages []sleep.Stage, minPacketLen int) ([]bool, error) {
	if len(stages) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}
	if minPacketLen <= 0 {
		return nil, errors.InvalidInput("minimum packet length must be positive")
	}

	flags := make([]bool, len(stages))
	var kept []sleep.Interval
	for _, run := range ScanRuns(stages, sleep.NREM) {
		if run.Len() >= minPacketLen {
			kept = append(kept, run)
		}
	}
	markIntervals(flags, kept)
	return flags, nil
}
