package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"somnoseg/adapters/csvio"
	"somnoseg/app"
	"somnoseg/internal"
	"somnoseg/internal/config"
	"somnoseg/internal/segment"
)

func newConsolidateCmd() *cobra.Command {
	var (
		minPacket    int
		mergeGapREM  int
		mergeGapNREM int
		outDir       string
		suffix       string
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "consolidate [files...]",
		Short: "Consolidate raw stage sequences into episode-level stages",
		Long: `Consolidate runs the segmentation pipeline over each input file and
writes <name>` + "`_consolidated`" + `.csv with a sleepStageConsolidated column, plus a
.run.json manifest. Files are processed independently; a failing file is
reported and does not stop the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts := cfg.SegmentOptions()
			if cmd.Flags().Changed("min-packet") {
				opts.MinPacketLen = minPacket
			}
			if cmd.Flags().Changed("merge-gap-rem") {
				opts.MergeGapREM = mergeGapREM
			}
			if cmd.Flags().Changed("merge-gap-nrem") {
				opts.MergeGapNREM = mergeGapNREM
			}
			if !cmd.Flags().Changed("out-dir") {
				outDir = cfg.Output.Dir
			}
			if !cmd.Flags().Changed("suffix") {
				suffix = cfg.Output.Suffix
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}

			svc := app.NewConsolidateService(csvio.NewReader(), csvio.NewWriter(),
				opts, outDir, suffix, workers, internal.DefaultLogger)
			results, err := svc.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAILED %s: %v\n", res.Input, res.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (run %s)\n", res.Input, res.Output, res.Manifest.RunID)
			}
			if failed := app.FailedCount(results); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minPacket, "min-packet", segment.DefaultMinPacketLen, "Minimum NREM packet length in samples")
	cmd.Flags().IntVar(&mergeGapREM, "merge-gap-rem", segment.DefaultMergeGapREM, "Maximum REM merge gap in samples")
	cmd.Flags().IntVar(&mergeGapNREM, "merge-gap-nrem", segment.DefaultMergeGapNREM, "Maximum NREM merge gap in samples")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for consolidated outputs")
	cmd.Flags().StringVar(&suffix, "suffix", "_consolidated", "Suffix appended to output file names")
	cmd.Flags().IntVar(&workers, "workers", 4, "Parallel file workers")

	return cmd
}
