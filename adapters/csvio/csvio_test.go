package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"somnoseg/domain/sleep"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recording.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_ParsesStagesAndTimestamps(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"Timestamp,sleepStage",
		"2024-03-05 09:00:00,1",
		"2024-03-05 09:00:01,2",
		"2024-03-05 09:00:02,3",
	}, "\n"))

	rec, err := NewReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM}, rec.Stages)
	assert.True(t, rec.HasTimestamps())
	assert.Equal(t, time.Date(2024, 3, 5, 9, 0, 1, 0, time.UTC), rec.Timestamps[1])
}

func TestReader_RoundsFloatStageCodes(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"sleepStage",
		"1.02",
		"1.98",
		"3.0",
	}, "\n"))

	rec, err := NewReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM}, rec.Stages)
}

func TestReader_RejectsOutOfRangeStage(t *testing.T) {
	path := writeTempCSV(t, "sleepStage\n1\n5\n")
	_, err := NewReader().Read(path)
	assert.Error(t, err)
}

func TestReader_MissingStageColumn(t *testing.T) {
	path := writeTempCSV(t, "Timestamp,emg\n2024-03-05 09:00:00,0.5\n")
	_, err := NewReader().Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, sleep.ErrMissingStageColumn)
}

func TestReader_EmptyTable(t *testing.T) {
	path := writeTempCSV(t, "Timestamp,sleepStage\n")
	_, err := NewReader().Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, sleep.ErrNoData)
}

func TestReader_KeepsPassthroughColumns(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"emg,sleepStage,eeg",
		"0.5,1,1.1",
		"0.6,2,1.2",
	}, "\n"))

	rec, err := NewReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"emg", "eeg"}, rec.ExtraHeaders)
	assert.Equal(t, []string{"0.5", "0.6"}, rec.Extra["emg"])
	assert.Equal(t, []string{"1.1", "1.2"}, rec.Extra["eeg"])
}

func TestWriter_RoundTrip(t *testing.T) {
	rec := &sleep.Recording{
		Stages:       []sleep.Stage{sleep.Wake, sleep.NREM},
		Consolidated: []sleep.Stage{sleep.Wake, sleep.NREM},
		Timestamps: []time.Time{
			time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 9, 0, 1, 0, time.UTC),
		},
		ExtraHeaders: []string{"emg"},
		Extra:        map[string][]string{"emg": {"0.5", "0.6"}},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewWriter().Write(path, rec))

	back, err := NewReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Stages, back.Stages)
	assert.Equal(t, rec.Consolidated, back.Consolidated)
	assert.Equal(t, rec.Extra["emg"], back.Extra["emg"])
	assert.True(t, back.Timestamps[1].Equal(rec.Timestamps[1]))
}

func TestWriter_OmitsConsolidatedWhenAbsent(t *testing.T) {
	rec := &sleep.Recording{Stages: []sleep.Stage{sleep.REM}}
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewWriter().Write(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sleepStageConsolidated")
}

func TestWriter_RejectsEmptyRecording(t *testing.T) {
	err := NewWriter().Write(filepath.Join(t.TempDir(), "out.csv"), &sleep.Recording{})
	assert.Error(t, err)
}
