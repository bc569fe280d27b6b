package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"somnoseg/domain/sleep"
	"somnoseg/internal/analysis"
	"somnoseg/internal/zeitgeber"
	"somnoseg/ports"
)

func TestSummaryWriter_Export(t *testing.T) {
	transitions, err := analysis.CountTransitions([]sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM, sleep.Wake})
	require.NoError(t, err)

	summary := &ports.AnalysisSummary{
		Source:    "sub-017.csv",
		Generated: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Bouts: []analysis.DurationSummary{
			{Stage: sleep.NREM, Count: 3, TotalSamples: 90, Mean: 30, Median: 28, SEM: 2.1, Min: 20, Max: 42, Q25: 24, Q75: 36},
		},
		LightDark: []analysis.DurationSummary{
			{Stage: sleep.NREM, Period: zeitgeber.Light, Count: 2, TotalSamples: 60, Mean: 30},
			{Stage: sleep.NREM, Period: zeitgeber.Dark, Count: 1, TotalSamples: 30, Mean: 30},
		},
		Fractions: []analysis.FractionBin{
			{BinStart: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), ZT: 1, Samples: 60, WakePercent: 50, NREMPercent: 40, REMPercent: 10},
		},
		Transitions: transitions,
		Tests: []analysis.TestResult{
			{TestName: "kruskal_wallis", Statistic: 7.2, PValue: 0.027, DF1: 2, Groups: 3},
		},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, NewSummaryWriter().Export(path, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Bouts", "LightDark", "Fractions", "Transitions", "Tests"}, sheets)

	stage, err := f.GetCellValue("Bouts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "NREM", stage)

	test, err := f.GetCellValue("Tests", "A2")
	require.NoError(t, err)
	assert.Equal(t, "kruskal_wallis", test)
}

func TestSummaryWriter_MinimalSummary(t *testing.T) {
	summary := &ports.AnalysisSummary{
		Bouts: []analysis.DurationSummary{{Stage: sleep.Wake, Count: 1, TotalSamples: 10, Mean: 10}},
	}

	path := filepath.Join(t.TempDir(), "minimal.xlsx")
	require.NoError(t, NewSummaryWriter().Export(path, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Bouts"}, f.GetSheetList())
}
