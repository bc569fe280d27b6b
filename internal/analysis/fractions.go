package analysis

import (
	"time"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
	"somnoseg/internal/zeitgeber"
)

// FractionBin holds the percentage of samples in each stage over one
// fixed-duration time bin.
type FractionBin struct {
	BinStart    time.Time `json:"bin_start"`
	ZT          float64   `json:"zt"`
	Samples     int       `json:"samples"`
	WakePercent float64   `json:"wake_percent"`
	NREMPercent float64   `json:"nrem_percent"`
	REMPercent  float64   `json:"rem_percent"`
}

// StageFractions bins a timestamped recording into fixed-duration windows
// and computes the percentage of each stage per window. Bins are aligned by
// flooring timestamps to the bin size.
func StageFractions(rec *sleep.Recording, clock zeitgeber.Clock, binSize time.Duration, consolidated bool) ([]FractionBin, error) {
	stages := rec.Stages
	if consolidated {
		stages = rec.Consolidated
	}
	if len(stages) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}
	if !rec.HasTimestamps() {
		return nil, errors.WithCode(errors.CodeValidationError, sleep.ErrMissingTimestampColumn)
	}
	if binSize <= 0 {
		return nil, errors.InvalidInput("bin size must be positive")
	}

	type counts struct {
		wake, nrem, rem, total int
	}
	byBin := make(map[time.Time]*counts)
	var order []time.Time

	for i, s := range stages {
		bin := rec.Timestamps[i].Truncate(binSize)
		c, ok := byBin[bin]
		if !ok {
			c = &counts{}
			byBin[bin] = c
			order = append(order, bin)
		}
		c.total++
		switch s {
		case sleep.Wake:
			c.wake++
		case sleep.NREM:
			c.nrem++
		case sleep.REM:
			c.rem++
		}
	}

	bins := make([]FractionBin, 0, len(order))
	for _, start := range order {
		c := byBin[start]
		bins = append(bins, FractionBin{
			BinStart:    start,
			ZT:          clock.ZT(start),
			Samples:     c.total,
			WakePercent: float64(c.wake) / float64(c.total) * 100,
			NREMPercent: float64(c.nrem) / float64(c.total) * 100,
			REMPercent:  float64(c.rem) / float64(c.total) * 100,
		})
	}
	return bins, nil
}
