package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"somnoseg/adapters/csvio"
	"somnoseg/domain/sleep"
	"somnoseg/internal/series"
)

func newDownsampleCmd() *cobra.Command {
	var (
		factor     int
		originalHz int
		targetHz   int
		out        string
	)

	cmd := &cobra.Command{
		Use:   "downsample [file]",
		Short: "Decimate a recording to a lower sampling rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := factor
			if !cmd.Flags().Changed("factor") {
				var err error
				if f, err = series.DownsampleFactor(originalHz, targetHz); err != nil {
					return err
				}
			}

			rec, err := csvio.NewReader().Read(args[0])
			if err != nil {
				return err
			}
			down, err := series.Downsample(rec, f)
			if err != nil {
				return err
			}
			if err := csvio.NewWriter().Write(out, down); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows -> %d rows, written to %s\n", rec.Len(), down.Len(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&factor, "factor", 0, "Keep every Nth row (overrides rate flags)")
	cmd.Flags().IntVar(&originalHz, "original-rate", 512, "Original sampling rate in Hz")
	cmd.Flags().IntVar(&targetHz, "target-rate", 1, "Target sampling rate in Hz")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newStitchCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "stitch [files...]",
		Short: "Concatenate split recordings row-wise, in argument order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := csvio.NewReader()
			recs := make([]*sleep.Recording, 0, len(args))
			for _, path := range args {
				rec, err := reader.Read(path)
				if err != nil {
					return err
				}
				recs = append(recs, rec)
			}

			stitched, err := series.Stitch(recs...)
			if err != nil {
				return err
			}
			if err := csvio.NewWriter().Write(out, stitched); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stitched %d files (%d rows) into %s\n", len(args), stitched.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output CSV path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newTimestampCmd() *cobra.Command {
	var (
		startStr string
		rateHz   int
		out      string
	)

	cmd := &cobra.Command{
		Use:   "timestamp [file]",
		Short: "Add a synthesized Timestamp column from a start time and rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse("2006-01-02 15:04:05", startStr)
			if err != nil {
				return fmt.Errorf("invalid start time (use \"YYYY-MM-DD HH:MM:SS\"): %w", err)
			}

			rec, err := csvio.NewReader().Read(args[0])
			if err != nil {
				return err
			}
			if err := series.SynthesizeTimestamps(rec, start, rateHz); err != nil {
				return err
			}
			if err := csvio.NewWriter().Write(out, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "timestamped %d rows into %s\n", rec.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Timestamp of the first sample")
	cmd.Flags().IntVar(&rateHz, "rate", 1, "Sampling rate in Hz")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV path")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
