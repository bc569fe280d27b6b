package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"somnoseg/adapters/csvio"
	"somnoseg/app"
	"somnoseg/internal"
	"somnoseg/internal/report"
	"somnoseg/internal/zeitgeber"
)

func newSummaryCmd() *cobra.Command {
	var (
		lightOn      int
		lightOff     int
		binSize      time.Duration
		consolidated bool
		reportPath   string
		htmlOut      bool
	)

	cmd := &cobra.Command{
		Use:   "summary [files...]",
		Short: "Stage fractions, transitions, and a Markdown report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := zeitgeber.Clock{LightsOn: lightOn, LightsOff: lightOff}
			if err := clock.Validate(); err != nil {
				return err
			}

			svc := app.NewSummaryService(csvio.NewReader(), internal.DefaultLogger)
			for _, input := range args {
				summary, err := svc.Analyze(cmd.Context(), input, app.SummaryOptions{
					Clock:        clock,
					BinSize:      binSize,
					Consolidated: consolidated,
					RunTests:     true,
				})
				if err != nil {
					return err
				}

				md := report.Markdown(summary)
				if reportPath == "" {
					fmt.Fprint(cmd.OutOrStdout(), md)
					continue
				}
				if htmlOut {
					if err := os.WriteFile(reportPath, report.HTML(md), 0o644); err != nil {
						return err
					}
				} else {
					if err := os.WriteFile(reportPath, []byte(md), 0o644); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lightOn, "light-on", 9, "Lights-on hour (ZT0)")
	cmd.Flags().IntVar(&lightOff, "light-off", 21, "Lights-off hour (ZT12)")
	cmd.Flags().DurationVar(&binSize, "bin", time.Hour, "Fraction bin size (0 disables binning)")
	cmd.Flags().BoolVar(&consolidated, "consolidated", false, "Analyze the sleepStageConsolidated column")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the report to this path instead of stdout")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "Render the report as HTML (with --report)")

	return cmd
}
