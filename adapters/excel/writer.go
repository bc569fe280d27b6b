// Package excel exports derived analysis tables as a multi-sheet workbook:
// one sheet per table (bout durations, light/dark comparison, stage
// fractions, transitions, statistical tests).
package excel

import (
	"github.com/xuri/excelize/v2"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
	"somnoseg/ports"
)

// SummaryWriter writes an AnalysisSummary workbook via excelize.
type SummaryWriter struct{}

// NewSummaryWriter creates a workbook exporter
func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// Export writes the summary to an xlsx file at path.
func (w *SummaryWriter) Export(path string, summary *ports.AnalysisSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Bouts")
	if err := writeBoutSheet(f, "Bouts", summary); err != nil {
		return errors.Wrapf(err, "writing bout sheet")
	}
	if len(summary.LightDark) > 0 {
		if _, err := f.NewSheet("LightDark"); err != nil {
			return errors.IOError(path, err)
		}
		if err := writeLightDarkSheet(f, "LightDark", summary); err != nil {
			return errors.Wrapf(err, "writing light/dark sheet")
		}
	}
	if len(summary.Fractions) > 0 {
		if _, err := f.NewSheet("Fractions"); err != nil {
			return errors.IOError(path, err)
		}
		if err := writeFractionSheet(f, "Fractions", summary); err != nil {
			return errors.Wrapf(err, "writing fraction sheet")
		}
	}
	if summary.Transitions != nil {
		if _, err := f.NewSheet("Transitions"); err != nil {
			return errors.IOError(path, err)
		}
		if err := writeTransitionSheet(f, "Transitions", summary); err != nil {
			return errors.Wrapf(err, "writing transition sheet")
		}
	}
	if len(summary.Tests) > 0 {
		if _, err := f.NewSheet("Tests"); err != nil {
			return errors.IOError(path, err)
		}
		if err := writeTestSheet(f, "Tests", summary); err != nil {
			return errors.Wrapf(err, "writing test sheet")
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError(path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeBoutSheet(f *excelize.File, sheet string, summary *ports.AnalysisSummary) error {
	header := []interface{}{"stage", "count", "total_samples", "mean", "median", "sem", "min", "max", "q25", "q75"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, s := range summary.Bouts {
		row := []interface{}{s.Stage.String(), s.Count, s.TotalSamples, s.Mean, s.Median, s.SEM, s.Min, s.Max, s.Q25, s.Q75}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeLightDarkSheet(f *excelize.File, sheet string, summary *ports.AnalysisSummary) error {
	header := []interface{}{"stage", "period", "count", "total_samples", "mean", "median", "sem"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, s := range summary.LightDark {
		row := []interface{}{s.Stage.String(), string(s.Period), s.Count, s.TotalSamples, s.Mean, s.Median, s.SEM}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeFractionSheet(f *excelize.File, sheet string, summary *ports.AnalysisSummary) error {
	header := []interface{}{"bin_start", "zt", "samples", "wake_percent", "nrem_percent", "rem_percent"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, b := range summary.Fractions {
		row := []interface{}{b.BinStart.Format("2006-01-02 15:04:05"), b.ZT, b.Samples, b.WakePercent, b.NREMPercent, b.REMPercent}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTransitionSheet(f *excelize.File, sheet string, summary *ports.AnalysisSummary) error {
	if err := writeRow(f, sheet, 1, []interface{}{"from", "to", "count", "percent"}); err != nil {
		return err
	}
	stages := []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM}
	rowNum := 2
	for _, from := range stages {
		for _, to := range stages {
			if from == to {
				continue
			}
			row := []interface{}{
				from.String(), to.String(),
				summary.Transitions.Counts[from][to],
				summary.Transitions.Percent(from, to),
			}
			if err := writeRow(f, sheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeTestSheet(f *excelize.File, sheet string, summary *ports.AnalysisSummary) error {
	if err := writeRow(f, sheet, 1, []interface{}{"test", "statistic", "p_value", "df1", "df2", "groups"}); err != nil {
		return err
	}
	for i, res := range summary.Tests {
		row := []interface{}{res.TestName, res.Statistic, res.PValue, res.DF1, res.DF2, res.Groups}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.SummaryExporter = (*SummaryWriter)(nil)
