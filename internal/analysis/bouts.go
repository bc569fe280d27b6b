// Package analysis derives summary measures from raw or consolidated stage
// sequences: bout durations, light/dark comparisons, stage transition counts,
// and per-bin stage fractions.
package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
	"somnoseg/internal/zeitgeber"
)

// Bout couples a contiguous stage run with the period its majority of
// samples falls into. Period is empty when the recording has no timestamps.
type Bout struct {
	sleep.Bout
	Period zeitgeber.Period
}

// ExtractBouts segments a stage sequence into maximal contiguous bouts, in
// sequence order. With timestamps present, each bout is labeled with the
// period holding the majority of its samples.
func ExtractBouts(rec *sleep.Recording, clock zeitgeber.Clock, consolidated bool) ([]Bout, error) {
	stages := rec.Stages
	if consolidated {
		stages = rec.Consolidated
	}
	if len(stages) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}

	var bouts []Bout
	start := 0
	for i := 1; i <= len(stages); i++ {
		if i < len(stages) && stages[i] == stages[start] {
			continue
		}
		b := Bout{Bout: sleep.Bout{
			Interval: sleep.Interval{Start: start, End: i},
			Stage:    stages[start],
		}}
		if rec.HasTimestamps() {
			b.Period = majorityPeriod(rec, clock, b.Interval)
		}
		bouts = append(bouts, b)
		start = i
	}
	return bouts, nil
}

// majorityPeriod labels an interval by the phase holding most of its samples.
func majorityPeriod(rec *sleep.Recording, clock zeitgeber.Clock, iv sleep.Interval) zeitgeber.Period {
	light := 0
	for i := iv.Start; i < iv.End; i++ {
		if clock.PeriodOf(rec.Timestamps[i]) == zeitgeber.Light {
			light++
		}
	}
	if light*2 >= iv.Len() {
		return zeitgeber.Light
	}
	return zeitgeber.Dark
}

// DurationSummary holds descriptive statistics for one group of bout
// durations, in samples.
type DurationSummary struct {
	Stage        sleep.Stage
	Period       zeitgeber.Period // empty for period-agnostic summaries
	Count        int
	TotalSamples int
	Mean         float64
	Median       float64
	SEM          float64
	Min          float64
	Max          float64
	Q25          float64
	Q75          float64
}

// Durations returns the duration of each bout of the given stage, in samples
// and in bout order.
func Durations(bouts []Bout, stage sleep.Stage) []float64 {
	var out []float64
	for _, b := range bouts {
		if b.Stage == stage {
			out = append(out, float64(b.Len()))
		}
	}
	return out
}

// DurationsByPeriod filters bout durations by stage and period.
func DurationsByPeriod(bouts []Bout, stage sleep.Stage, period zeitgeber.Period) []float64 {
	var out []float64
	for _, b := range bouts {
		if b.Stage == stage && b.Period == period {
			out = append(out, float64(b.Len()))
		}
	}
	return out
}

// SummarizeDurations computes descriptive statistics over one duration group.
func SummarizeDurations(stage sleep.Stage, period zeitgeber.Period, durations []float64) (DurationSummary, error) {
	s := DurationSummary{Stage: stage, Period: period, Count: len(durations)}
	if len(durations) == 0 {
		return s, nil
	}

	var err error
	if s.Mean, err = stats.Mean(durations); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(durations); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(durations); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(durations); err != nil {
		return s, err
	}
	// Percentile rejects groups too small to interpolate the quartile;
	// below four values Q25/Q75 stay zero.
	if len(durations) >= 4 {
		if s.Q25, err = stats.Percentile(durations, 25); err != nil {
			return s, err
		}
		if s.Q75, err = stats.Percentile(durations, 75); err != nil {
			return s, err
		}
	}
	if len(durations) > 1 {
		sd, err := stats.StandardDeviationSample(durations)
		if err != nil {
			return s, err
		}
		s.SEM = sd / math.Sqrt(float64(len(durations)))
	}
	for _, d := range durations {
		s.TotalSamples += int(d)
	}
	return s, nil
}

// SummarizeAllStages produces one summary per stage over all bouts.
func SummarizeAllStages(bouts []Bout) ([]DurationSummary, error) {
	var out []DurationSummary
	for _, stage := range []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM} {
		summary, err := SummarizeDurations(stage, "", Durations(bouts, stage))
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// SummarizeLightDark produces one summary per stage and period, six groups
// in the fixed order Wake/NREM/REM crossed with light/dark.
func SummarizeLightDark(bouts []Bout) ([]DurationSummary, error) {
	var out []DurationSummary
	for _, stage := range []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM} {
		for _, period := range []zeitgeber.Period{zeitgeber.Light, zeitgeber.Dark} {
			summary, err := SummarizeDurations(stage, period, DurationsByPeriod(bouts, stage, period))
			if err != nil {
				return nil, err
			}
			out = append(out, summary)
		}
	}
	return out, nil
}
