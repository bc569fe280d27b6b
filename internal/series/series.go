// Package series holds row-level utilities that prepare recordings for
// segmentation: decimating downsampling, stitching of split recordings, and
// timestamp synthesis for exports that lack a clock column.
package series

import (
	"fmt"
	"time"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

// Downsample keeps every factor-th row of a recording, starting with the
// first. All columns, passthrough ones included, are decimated together.
func Downsample(rec *sleep.Recording, factor int) (*sleep.Recording, error) {
	if factor < 1 {
		return nil, errors.InvalidInput("downsampling factor must be at least 1")
	}
	if rec.Len() == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}

	out := &sleep.Recording{
		Source:       rec.Source,
		ExtraHeaders: append([]string(nil), rec.ExtraHeaders...),
		Extra:        make(map[string][]string, len(rec.Extra)),
	}
	for i := 0; i < rec.Len(); i += factor {
		out.Stages = append(out.Stages, rec.Stages[i])
		if len(rec.Consolidated) == rec.Len() {
			out.Consolidated = append(out.Consolidated, rec.Consolidated[i])
		}
		if rec.HasTimestamps() {
			out.Timestamps = append(out.Timestamps, rec.Timestamps[i])
		}
	}
	for _, h := range rec.ExtraHeaders {
		col := rec.Extra[h]
		for i := 0; i < len(col); i += factor {
			out.Extra[h] = append(out.Extra[h], col[i])
		}
	}
	return out, nil
}

// DownsampleFactor derives the decimation factor from two sampling rates.
// The original rate must be an integer multiple of the target.
func DownsampleFactor(originalHz, targetHz int) (int, error) {
	if originalHz <= 0 || targetHz <= 0 {
		return 0, errors.InvalidInput("sampling rates must be positive")
	}
	if originalHz%targetHz != 0 {
		return 0, errors.InvalidInput(
			fmt.Sprintf("original rate %d Hz is not a multiple of target %d Hz", originalHz, targetHz))
	}
	return originalHz / targetHz, nil
}

// Stitch concatenates recordings row-wise, in argument order. All inputs
// must share the first recording's column shape; the stitched recording
// keeps the first input's headers.
func Stitch(recs ...*sleep.Recording) (*sleep.Recording, error) {
	if len(recs) == 0 {
		return nil, errors.InvalidInput("nothing to stitch")
	}

	first := recs[0]
	out := &sleep.Recording{
		Source:       first.Source,
		ExtraHeaders: append([]string(nil), first.ExtraHeaders...),
		Extra:        make(map[string][]string, len(first.Extra)),
	}
	wantTimestamps := first.HasTimestamps()

	for i, rec := range recs {
		if rec.Len() == 0 {
			return nil, errors.Wrapf(sleep.ErrNoData, "stitch input %d (%s)", i, rec.Source)
		}
		if rec.HasTimestamps() != wantTimestamps {
			return nil, errors.InvalidInput(
				fmt.Sprintf("stitch input %d (%s) disagrees on timestamp presence", i, rec.Source))
		}
		if len(rec.ExtraHeaders) != len(first.ExtraHeaders) {
			return nil, errors.InvalidInput(
				fmt.Sprintf("stitch input %d (%s) has a different column set", i, rec.Source))
		}
		out.Stages = append(out.Stages, rec.Stages...)
		out.Timestamps = append(out.Timestamps, rec.Timestamps...)
		for _, h := range first.ExtraHeaders {
			col, ok := rec.Extra[h]
			if !ok {
				return nil, errors.InvalidInput(
					fmt.Sprintf("stitch input %d (%s) is missing column %q", i, rec.Source, h))
			}
			out.Extra[h] = append(out.Extra[h], col...)
		}
	}
	return out, nil
}

// SynthesizeTimestamps assigns evenly spaced timestamps from a start time
// and sampling rate, replacing any existing timestamp column.
func SynthesizeTimestamps(rec *sleep.Recording, start time.Time, rateHz int) error {
	if rateHz <= 0 {
		return errors.InvalidInput("sampling rate must be positive")
	}
	if rec.Len() == 0 {
		return errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}

	step := time.Second / time.Duration(rateHz)
	ts := make([]time.Time, rec.Len())
	for i := range ts {
		ts[i] = start.Add(time.Duration(i) * step)
	}
	rec.Timestamps = ts
	return nil
}
