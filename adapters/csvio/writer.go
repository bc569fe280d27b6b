package csvio

import (
	"encoding/csv"
	"os"
	"strconv"

	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

const timestampOutputLayout = "2006-01-02 15:04:05"

// Writer serializes recordings to CSV. Column order is Timestamp (when
// present), passthrough columns in original order, sleepStage, and
// sleepStageConsolidated when the recording carries one. Intermediate
// segmentation flags are never written.
type Writer struct{}

// NewWriter creates a CSV recording writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write serializes the recording to the file at path, replacing it.
func (w *Writer) Write(path string, rec *sleep.Recording) error {
	if rec.Len() == 0 {
		return errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IOError(path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	hasTS := rec.HasTimestamps()
	hasConsolidated := len(rec.Consolidated) == rec.Len()

	var header []string
	if hasTS {
		header = append(header, timestampColumn)
	}
	header = append(header, rec.ExtraHeaders...)
	header = append(header, stageColumn)
	if hasConsolidated {
		header = append(header, consolidatedColumn)
	}
	if err := cw.Write(header); err != nil {
		return errors.IOError(path, err)
	}

	row := make([]string, 0, len(header))
	for i := 0; i < rec.Len(); i++ {
		row = row[:0]
		if hasTS {
			row = append(row, rec.Timestamps[i].Format(timestampOutputLayout))
		}
		for _, h := range rec.ExtraHeaders {
			row = append(row, rec.Extra[h][i])
		}
		row = append(row, strconv.Itoa(int(rec.Stages[i])))
		if hasConsolidated {
			row = append(row, strconv.Itoa(int(rec.Consolidated[i])))
		}
		if err := cw.Write(row); err != nil {
			return errors.IOError(path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.IOError(path, err)
	}
	return nil
}
