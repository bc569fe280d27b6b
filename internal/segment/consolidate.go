package segment

import (
	"fmt"

	"somnoseg/domain/core"
	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

// Default thresholds assume 1 Hz input (one sample per second). Both are
// exposed as parameters because their meaning scales with the upstream
// sampling rate.
const (
	DefaultMinPacketLen = 20
	DefaultMergeGapREM  = 40
	DefaultMergeGapNREM = 40
)

// Options carries the segmentation thresholds, all in samples.
type Options struct {
	MinPacketLen int
	MergeGapREM  int
	MergeGapNREM int
}

// DefaultOptions returns the reference thresholds for 1 Hz data
func DefaultOptions() Options {
	return Options{
		MinPacketLen: DefaultMinPacketLen,
		MergeGapREM:  DefaultMergeGapREM,
		MergeGapNREM: DefaultMergeGapNREM,
	}
}

// Validate checks the thresholds are usable
func (o Options) Validate() error {
	if o.MinPacketLen <= 0 {
		return errors.InvalidInput("min packet length must be positive")
	}
	if o.MergeGapREM <= 0 {
		return errors.InvalidInput("REM merge gap must be positive")
	}
	if o.MergeGapNREM <= 0 {
		return errors.InvalidInput("NREM merge gap must be positive")
	}
	return nil
}

// Result holds the consolidated stage sequence together with the per-sample
// episode flags. The flags are exposed for inspection and accounting; only
// Consolidated belongs in serialized output.
type Result struct {
	Consolidated     []sleep.Stage
	Packets          []bool
	REMEpisodes      []bool
	NREMEpisodes     []bool
	WakeEpisodes     []bool
	InterruptingNREM []bool
}

// Episodes returns the consolidated sequence as a list of episodes
func (r *Result) Episodes() []sleep.Episode {
	var episodes []sleep.Episode
	for _, stage := range []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM} {
		for _, iv := range ScanRuns(r.Consolidated, stage) {
			episodes = append(episodes, sleep.Episode{Interval: iv, Stage: stage})
		}
	}
	return episodes
}

// Consolidate runs the full pipeline over a raw stage sequence: packet
// detection, REM merging, NREM merging, wake derivation, relabeling.
func Consolidate(stages []sleep.Stage, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}
	for i, s := range stages {
		if !s.Valid() {
			return nil, errors.InvalidInput(fmt.Sprintf("sample %d has stage code %d, expected 1, 2 or 3", i, int(s)))
		}
	}

	packets, err := DetectPackets(stages, opts.MinPacketLen)
	if err != nil {
		return nil, err
	}

	// REM before NREM: NREM eligibility depends on which samples REM claimed.
	remFlags, interrupting := MergeREMEpisodes(stages, opts.MergeGapREM)
	nremFlags := MergeNREMEpisodes(packets, remFlags, opts.MergeGapNREM)
	wakeFlags := DeriveWake(remFlags, nremFlags)

	consolidated, err := relabel(remFlags, nremFlags, wakeFlags)
	if err != nil {
		return nil, err
	}

	return &Result{
		Consolidated:     consolidated,
		Packets:          packets,
		REMEpisodes:      remFlags,
		NREMEpisodes:     nremFlags,
		WakeEpisodes:     wakeFlags,
		InterruptingNREM: interrupting,
	}, nil
}

// relabel maps the three episode flags to consolidated stage codes. A sample
// matching zero or more than one flag signals a bug in the merge logic and
// is a fatal internal error, never coerced to a default stage.
func relabel(remFlags, nremFlags, wakeFlags []bool) ([]sleep.Stage, error) {
	out := make([]sleep.Stage, len(remFlags))
	for i := range out {
		n := 0
		if wakeFlags[i] {
			n++
			out[i] = sleep.Wake
		}
		if nremFlags[i] {
			n++
			out[i] = sleep.NREM
		}
		if remFlags[i] {
			n++
			out[i] = sleep.REM
		}
		if n != 1 {
			return nil, errors.WithCode(errors.CodeInternalError,
				core.NewConsistencyError(fmt.Sprintf("sample %d matches %d episode flags", i, n)))
		}
	}
	return out, nil
}
