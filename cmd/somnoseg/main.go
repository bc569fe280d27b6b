// Command somnoseg is the batch CLI for sleep-stage recordings: consolidate
// raw hypnograms into episodes, summarize bout structure, and prepare files
// (downsample, stitch, timestamp) for analysis.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "somnoseg",
		Short: "Batch analysis of sleep-stage time series",
		Long: `somnoseg processes per-sample sleep-stage annotations (1=Wake, 2=NREM,
3=REM) from CSV exports: episode consolidation, bout statistics, stage
fractions, transition counts, and file preparation utilities.`,
	}

	rootCmd.AddCommand(
		newConsolidateCmd(),
		newBoutsCmd(),
		newSummaryCmd(),
		newDownsampleCmd(),
		newStitchCmd(),
		newTimestampCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
