package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"somnoseg/adapters/csvio"
	"somnoseg/adapters/excel"
	"somnoseg/app"
	"somnoseg/internal"
	"somnoseg/internal/zeitgeber"
)

func newBoutsCmd() *cobra.Command {
	var (
		lightOn      int
		lightOff     int
		consolidated bool
		excelOut     string
	)

	cmd := &cobra.Command{
		Use:   "bouts [files...]",
		Short: "Bout duration statistics with light/dark comparison",
		Long: `Bouts extracts contiguous same-stage bouts from each file, prints
per-stage duration statistics, and compares bout-duration groups with
Kruskal-Wallis, ANOVA, and per-stage light-vs-dark Welch tests. With
--excel the tables are written to a workbook.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := zeitgeber.Clock{LightsOn: lightOn, LightsOff: lightOff}
			if err := clock.Validate(); err != nil {
				return err
			}

			svc := app.NewSummaryService(csvio.NewReader(), internal.DefaultLogger)
			for _, input := range args {
				summary, err := svc.Analyze(cmd.Context(), input, app.SummaryOptions{
					Clock:        clock,
					Consolidated: consolidated,
					RunTests:     true,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", input)
				for _, s := range summary.Bouts {
					fmt.Fprintf(cmd.OutOrStdout(),
						"  %-5s bouts=%-4d mean=%.1f median=%.1f sem=%.2f min=%.0f max=%.0f\n",
						s.Stage, s.Count, s.Mean, s.Median, s.SEM, s.Min, s.Max)
				}
				for _, res := range summary.Tests {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-40s stat=%.3f p=%.4g\n",
						res.TestName, res.Statistic, res.PValue)
				}

				if excelOut != "" {
					if err := excel.NewSummaryWriter().Export(excelOut, summary); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  workbook written to %s\n", excelOut)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lightOn, "light-on", 9, "Lights-on hour (ZT0)")
	cmd.Flags().IntVar(&lightOff, "light-off", 21, "Lights-off hour (ZT12)")
	cmd.Flags().BoolVar(&consolidated, "consolidated", false, "Analyze the sleepStageConsolidated column")
	cmd.Flags().StringVar(&excelOut, "excel", "", "Write summary workbook to this xlsx path")

	return cmd
}
