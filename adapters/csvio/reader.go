// Package csvio reads and writes the flat-file recording format: one row per
// sample, a sleepStage column of stage codes, an optional Timestamp column,
// and any number of passthrough columns.
package csvio

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

const (
	stageColumn        = "sleepStage"
	consolidatedColumn = "sleepStageConsolidated"
	timestampColumn    = "Timestamp"
)

// Timestamp layouts accepted on input, most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// Reader loads recordings from CSV files.
type Reader struct{}

// NewReader creates a CSV recording reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses a recording from the file at path. It fails fast on a missing
// sleepStage column or an empty table, before any row processing.
func (r *Reader) Read(path string) (*sleep.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError(path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.IOError(path, err)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(sleep.ErrNoData, "reading %s", path)
	}

	header := rows[0]
	stageIdx, tsIdx, consIdx := -1, -1, -1
	var extraHeaders []string
	extraIdx := make(map[string]int)
	for i, h := range header {
		switch name := strings.TrimSpace(h); name {
		case stageColumn:
			stageIdx = i
		case timestampColumn:
			tsIdx = i
		case consolidatedColumn:
			consIdx = i
		default:
			extraHeaders = append(extraHeaders, name)
			extraIdx[name] = i
		}
	}
	if stageIdx < 0 {
		return nil, errors.Wrapf(sleep.ErrMissingStageColumn, "reading %s", path)
	}
	if len(rows) < 2 {
		return nil, errors.Wrapf(sleep.ErrNoData, "reading %s", path)
	}

	rec := &sleep.Recording{
		Source:       path,
		ExtraHeaders: extraHeaders,
		Extra:        make(map[string][]string, len(extraHeaders)),
	}

	for rowNum, row := range rows[1:] {
		stage, err := parseStage(row[stageIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", path, rowNum+2)
		}
		rec.Stages = append(rec.Stages, stage)

		if tsIdx >= 0 {
			ts, err := parseTimestamp(row[tsIdx])
			if err != nil {
				return nil, errors.Wrapf(err, "%s row %d", path, rowNum+2)
			}
			rec.Timestamps = append(rec.Timestamps, ts)
		}
		if consIdx >= 0 {
			stage, err := parseStage(row[consIdx])
			if err != nil {
				return nil, errors.Wrapf(err, "%s row %d (%s)", path, rowNum+2, consolidatedColumn)
			}
			rec.Consolidated = append(rec.Consolidated, stage)
		}
		for _, h := range extraHeaders {
			rec.Extra[h] = append(rec.Extra[h], row[extraIdx[h]])
		}
	}

	if err := rec.Validate(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return rec, nil
}

// parseStage coerces a cell to a stage code, rounding float scores the way
// the upstream scorer expects.
func parseStage(cell string) (sleep.Stage, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.InvalidInput("sleepStage cell " + strconv.Quote(cell) + " is not numeric")
	}
	stage, err := sleep.StageFromFloat(v)
	if err != nil {
		return 0, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return stage, nil
}

func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.InvalidInput("unrecognized timestamp " + strconv.Quote(cell))
}
