package app

import (
	"context"
	"time"

	"somnoseg/domain/sleep"
	"somnoseg/internal"
	"somnoseg/internal/analysis"
	"somnoseg/internal/errors"
	"somnoseg/internal/zeitgeber"
	"somnoseg/ports"
)

// SummaryOptions controls which derived tables a summary run produces.
type SummaryOptions struct {
	Clock        zeitgeber.Clock
	BinSize      time.Duration // zero disables fraction binning
	Consolidated bool          // analyze sleepStageConsolidated instead of sleepStage
	RunTests     bool
}

// SummaryService derives bout, transition, and fraction tables from
// recordings.
type SummaryService struct {
	reader ports.RecordingReader
	logger *internal.Logger
}

// NewSummaryService assembles the analysis service
func NewSummaryService(reader ports.RecordingReader, logger *internal.Logger) *SummaryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SummaryService{reader: reader, logger: logger}
}

// Analyze loads one file and computes its summary tables.
func (s *SummaryService) Analyze(ctx context.Context, input string, opts SummaryOptions) (*ports.AnalysisSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, err := s.reader.Read(input)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", input)
	}
	if opts.Consolidated && len(rec.Consolidated) != rec.Len() {
		return nil, errors.ValidationError(input + " has no sleepStageConsolidated column; run consolidate first")
	}

	return s.summarize(rec, opts)
}

func (s *SummaryService) summarize(rec *sleep.Recording, opts SummaryOptions) (*ports.AnalysisSummary, error) {
	summary := &ports.AnalysisSummary{
		Source:    rec.Source,
		Generated: time.Now().UTC(),
	}

	bouts, err := analysis.ExtractBouts(rec, opts.Clock, opts.Consolidated)
	if err != nil {
		return nil, errors.Wrapf(err, "extract bouts from %s", rec.Source)
	}
	s.logger.Debug("extracted %d bouts from %s", len(bouts), rec.Source)

	if summary.Bouts, err = analysis.SummarizeAllStages(bouts); err != nil {
		return nil, errors.Wrapf(err, "summarize bouts of %s", rec.Source)
	}

	stages := rec.Stages
	if opts.Consolidated {
		stages = rec.Consolidated
	}
	if summary.Transitions, err = analysis.CountTransitions(stages); err != nil {
		return nil, errors.Wrapf(err, "count transitions of %s", rec.Source)
	}

	if rec.HasTimestamps() {
		if summary.LightDark, err = analysis.SummarizeLightDark(bouts); err != nil {
			return nil, errors.Wrapf(err, "light/dark summary of %s", rec.Source)
		}
		if opts.BinSize > 0 {
			if summary.Fractions, err = analysis.StageFractions(rec, opts.Clock, opts.BinSize, opts.Consolidated); err != nil {
				return nil, errors.Wrapf(err, "stage fractions of %s", rec.Source)
			}
		}
	}

	if opts.RunTests {
		summary.Tests = s.runTests(bouts, rec.HasTimestamps())
	}
	return summary, nil
}

// runTests compares bout-duration groups. Tests that cannot run on the
// available data (too few bouts) are skipped rather than failing the
// summary.
func (s *SummaryService) runTests(bouts []analysis.Bout, hasTimestamps bool) []analysis.TestResult {
	var tests []analysis.TestResult

	wake := analysis.Durations(bouts, sleep.Wake)
	nrem := analysis.Durations(bouts, sleep.NREM)
	rem := analysis.Durations(bouts, sleep.REM)

	if res, err := analysis.KruskalWallis(wake, nrem, rem); err == nil {
		tests = append(tests, res)
	} else {
		s.logger.Debug("skipping Kruskal-Wallis: %v", err)
	}
	if res, err := analysis.OneWayANOVA(wake, nrem, rem); err == nil {
		tests = append(tests, res)
	} else {
		s.logger.Debug("skipping ANOVA: %v", err)
	}

	if hasTimestamps {
		for _, stage := range []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM} {
			light := analysis.DurationsByPeriod(bouts, stage, zeitgeber.Light)
			dark := analysis.DurationsByPeriod(bouts, stage, zeitgeber.Dark)
			if res, err := analysis.WelchTTest(light, dark); err == nil {
				res.TestName = "welch_ttest_" + stage.String() + "_light_vs_dark"
				tests = append(tests, res)
			} else {
				s.logger.Debug("skipping light/dark t-test for %s: %v", stage, err)
			}
		}
	}
	return tests
}
