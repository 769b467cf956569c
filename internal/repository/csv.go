package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"violations-dashboard/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// Column names read from the source file. Columns missing from the header
// are read as empty values.
const (
	colCaseNo      = "case_no"
	colStatusTime  = "status_dttm"
	colStatus      = "status"
	colCode        = "code"
	colDescription = "description"
	colStreet      = "violation_street"
	colCity        = "violation_city"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// LoadStats describes data quality problems found while parsing.
type LoadStats struct {
	Rows                  int
	UnparseableTimestamps int
	MissingCoordinates    int
}

// CSVRepository reads violations from a CSV export of the dataset.
type CSVRepository struct {
	path string
}

// NewCSVRepository creates a repository reading the file at path
func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// LoadViolations parses the whole file.
func (r *CSVRepository) LoadViolations(ctx context.Context) ([]models.Violation, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open file: %w", err)
	}
	defer file.Close()

	records, stats, err := ParseViolations(ctx, file)
	if err != nil {
		return nil, err
	}

	if stats.UnparseableTimestamps > 0 {
		log.Warn().
			Str("file", r.path).
			Int("rows", stats.Rows).
			Int("unparseable_timestamps", stats.UnparseableTimestamps).
			Msg("violations without a usable status_dttm are excluded from year filters")
	}
	log.Info().
		Str("file", r.path).
		Int("rows", stats.Rows).
		Int("missing_coordinates", stats.MissingCoordinates).
		Msg("loaded violations")

	return records, nil
}

// ParseViolations reads violations from CSV data with a header row.
func ParseViolations(ctx context.Context, src io.Reader) ([]models.Violation, LoadStats, error) {
	var stats LoadStats

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("repository: failed to read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return clean(row[i])
	}

	records := []models.Violation{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("repository: failed to read record: %w", err)
		}

		v := models.Violation{
			CaseNo:      field(row, colCaseNo),
			City:        field(row, colCity),
			Street:      field(row, colStreet),
			Description: field(row, colDescription),
			Code:        field(row, colCode),
			Status:      field(row, colStatus),
			Latitude:    ParseCoordinate(field(row, colLatitude)),
			Longitude:   ParseCoordinate(field(row, colLongitude)),
		}

		raw := field(row, colStatusTime)
		v.StatusTime = ParseTimestamp(raw)
		if v.StatusTime == nil && raw != "" {
			stats.UnparseableTimestamps++
		}
		if !v.HasLocation() {
			stats.MissingCoordinates++
		}

		records = append(records, v)
		stats.Rows++
	}

	return records, stats, nil
}

// ParseTimestamp returns nil when s matches none of the known layouts.
func ParseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseCoordinate returns nil for empty or non-numeric values.
func ParseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
