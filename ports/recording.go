package ports

import (
	"time"

	"somnoseg/domain/sleep"
	"somnoseg/internal/analysis"
)

// RecordingReader loads an annotated recording from a flat file. The
// implementation guarantees the sleepStage column is present and coerced to
// valid stage codes before the recording is returned.
type RecordingReader interface {
	Read(path string) (*sleep.Recording, error)
}

// RecordingWriter serializes a recording. Scratch columns from segmentation
// never appear in the output.
type RecordingWriter interface {
	Write(path string, rec *sleep.Recording) error
}

// SummaryExporter writes derived analysis tables to a workbook or similar
// multi-sheet artifact.
type SummaryExporter interface {
	Export(path string, summary *AnalysisSummary) error
}

// AnalysisSummary bundles the derived tables produced by one summary run.
type AnalysisSummary struct {
	Source      string
	Generated   time.Time
	Bouts       []analysis.DurationSummary
	LightDark   []analysis.DurationSummary
	Fractions   []analysis.FractionBin
	Transitions *analysis.TransitionMatrix
	Tests       []analysis.TestResult
}
