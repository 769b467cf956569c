package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `case_no,ap_case_defn_key,status_dttm,status,code,value,description,violation_stno,violation_street,violation_city,violation_state,latitude,longitude
V1,1,2019-05-06 09:15:42,Closed,105.1,,Maintenance,12,Main St,Dorchester,MA,42.3,-71.06
V2,1,not a date,Open,102.8,,Garages,3,Elm St, Roxbury ,MA,,
V3,1,,Open,,,,,,,MA,bad,-71.1
`

func TestParseViolations(t *testing.T) {
	records, stats, err := ParseViolations(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, LoadStats{Rows: 3, UnparseableTimestamps: 1, MissingCoordinates: 2}, stats)

	first := records[0]
	assert.Equal(t, "V1", first.CaseNo)
	assert.Equal(t, "Dorchester", first.City)
	assert.Equal(t, "Main St", first.Street)
	assert.Equal(t, "Maintenance", first.Description)
	assert.Equal(t, "105.1", first.Code)
	assert.Equal(t, "Closed", first.Status)
	require.NotNil(t, first.StatusTime)
	assert.Equal(t, time.Date(2019, time.May, 6, 9, 15, 42, 0, time.UTC), *first.StatusTime)
	require.True(t, first.HasLocation())
	assert.InDelta(t, 42.3, *first.Latitude, 1e-9)
	assert.Empty(t, first.GroupedDescription, "grouping is left to the analytics package")

	second := records[1]
	assert.Equal(t, "Roxbury", second.City, "values are trimmed")
	assert.Nil(t, second.StatusTime)
	assert.False(t, second.HasLocation())

	third := records[2]
	assert.Empty(t, third.City)
	assert.Empty(t, third.Code)
	assert.Nil(t, third.StatusTime)
	assert.Nil(t, third.Latitude)
	require.NotNil(t, third.Longitude)
}

func TestParseViolations_MissingColumns(t *testing.T) {
	records, _, err := ParseViolations(context.Background(), strings.NewReader("\ufeffCASE_NO,violation_city\nV9,Boston\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "V9", records[0].CaseNo)
	assert.Equal(t, "Boston", records[0].City)
	assert.Empty(t, records[0].Description)
	assert.Nil(t, records[0].StatusTime)
}

func TestParseViolations_EmptyInput(t *testing.T) {
	_, _, err := ParseViolations(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseViolations_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ParseViolations(ctx, strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{name: "dataset layout", input: "2021-11-02 14:05:00", expected: ptrTime(time.Date(2021, 11, 2, 14, 5, 0, 0, time.UTC))},
		{name: "rfc3339", input: "2021-11-02T14:05:00Z", expected: ptrTime(time.Date(2021, 11, 2, 14, 5, 0, 0, time.UTC))},
		{name: "date only", input: "2012-01-31", expected: ptrTime(time.Date(2012, 1, 31, 0, 0, 0, 0, time.UTC))},
		{name: "us layout", input: "03/15/2010 08:30", expected: ptrTime(time.Date(2010, 3, 15, 8, 30, 0, 0, time.UTC))},
		{name: "empty", input: "", expected: nil},
		{name: "garbage", input: "yesterday", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "got %v", got)
		})
	}
}

func TestCSVRepository_LoadViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "violations.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := NewCSVRepository(path).LoadViolations(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewCSVRepository(filepath.Join(t.TempDir(), "missing.csv")).LoadViolations(context.Background())
	assert.Error(t, err)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
