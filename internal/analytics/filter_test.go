package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func cities(d Dataset) []string {
	out := []string{}
	for _, r := range d.Records() {
		out = append(out, r.City)
	}
	return out
}

func TestFilterByYearRange(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		expected int
	}{
		{name: "full range", start: 2009, end: 2023, expected: 5},
		{name: "inclusive bounds", start: 2018, end: 2019, expected: 2},
		{name: "single year", start: 2020, end: 2020, expected: 1},
		{name: "inverted range is empty", start: 2023, end: 2009, expected: 0},
		{name: "no matching years", start: 1990, end: 2000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByYearRange(sampleDataset(), tt.start, tt.end)
			assert.Equal(t, tt.expected, got.Len())
		})
	}
}

func TestFilterByYearRange_DropsMissingTimestamps(t *testing.T) {
	got := FilterByYearRange(sampleDataset(), 0, 9999)

	for _, r := range got.Records() {
		assert.NotNil(t, r.StatusTime)
	}
	assert.Equal(t, 5, got.Len())
}

func TestFilterByCode(t *testing.T) {
	d := sampleDataset()

	assert.Equal(t, d.Len(), FilterByCode(d, AllCodes).Len())
	assert.Equal(t, []string{"Boston", ""}, cities(FilterByCode(d, "102.8")))
	assert.Equal(t, 0, FilterByCode(d, "999").Len())
}

func TestFilterByCities(t *testing.T) {
	d := sampleDataset()

	assert.Equal(t, d.Len(), FilterByCities(d, nil).Len())
	assert.Equal(t, []string{"Dorchester", "Roxbury", "Dorchester"}, cities(FilterByCities(d, []string{"Roxbury", "Dorchester"})))
	assert.Equal(t, 0, FilterByCities(d, []string{"boston"}).Len(), "membership is case sensitive")
}

func TestFilterByCategories(t *testing.T) {
	d := sampleDataset()

	assert.Equal(t, d.Len(), FilterByCategories(d, []string{}).Len())
	assert.Equal(t, 2, FilterByCategories(d, []string{MaintenanceCategory}).Len())
	assert.Equal(t, 3, FilterByCategories(d, []string{MaintenanceCategory, "Specific Area Issues"}).Len())
	assert.Equal(t, 0, FilterByCategories(d, []string{"Nonexistent"}).Len())
}

func TestFilters_EmptyDataset(t *testing.T) {
	empty := NewDataset(nil)

	assert.Equal(t, 0, FilterByYearRange(empty, 2009, 2023).Len())
	assert.Equal(t, 0, FilterByCode(empty, "105.1").Len())
	assert.Equal(t, 0, FilterByCode(empty, AllCodes).Len())
	assert.Equal(t, 0, FilterByCities(empty, []string{"Boston"}).Len())
	assert.Equal(t, 0, FilterByCategories(empty, []string{FallbackCategory}).Len())
}

func TestFilters_Idempotent(t *testing.T) {
	d := sampleDataset()
	selected := []string{"Boston", "Roxbury"}

	once := FilterByCities(d, selected)
	twice := FilterByCities(once, selected)

	if diff := cmp.Diff(once.Records(), twice.Records()); diff != "" {
		t.Errorf("FilterByCities not idempotent (-once +twice):\n%s", diff)
	}
}

func TestFilters_Commute(t *testing.T) {
	d := sampleDataset()

	for _, code := range []string{AllCodes, "105.1", "102.8", "missing"} {
		a := FilterByYearRange(FilterByCode(d, code), 2016, 2021)
		b := FilterByCode(FilterByYearRange(d, 2016, 2021), code)

		if diff := cmp.Diff(a.Records(), b.Records()); diff != "" {
			t.Errorf("code %q: year and code filters do not commute (-a +b):\n%s", code, diff)
		}
	}
}

func TestFilters_DoNotMutateSource(t *testing.T) {
	d := sampleDataset()
	before := d.Records()

	_ = FilterByCities(d, []string{"Boston"})
	_ = FilterByYearRange(d, 2015, 2016)

	if diff := cmp.Diff(before, d.Records()); diff != "" {
		t.Errorf("source dataset changed (-before +after):\n%s", diff)
	}
}

func TestCriteria_Apply(t *testing.T) {
	d := sampleDataset()

	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{name: "zero criteria keeps everything", criteria: Criteria{}, expected: cities(d)},
		{
			name:     "years and cities",
			criteria: Criteria{Years: &YearRange{Start: 2015, End: 2019}, Cities: []string{"Boston", "Dorchester"}},
			expected: []string{"Boston", "Boston", "Dorchester"},
		},
		{
			name:     "code and category",
			criteria: Criteria{Code: "105.1", Categories: []string{MaintenanceCategory}},
			expected: []string{"Boston", "Dorchester"},
		},
		{
			name:     "all code sentinel",
			criteria: Criteria{Years: &YearRange{Start: 2020, End: 2021}, Code: AllCodes},
			expected: []string{"Roxbury", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cities(tt.criteria.Apply(d)))
		})
	}
}

func TestDataset_Options(t *testing.T) {
	d := sampleDataset()

	assert.Equal(t, []string{"Boston", "Dorchester", "Roxbury"}, d.Cities())
	assert.Equal(t, []string{"102.8", "105.1", "116"}, d.Codes())
	assert.Equal(t, []string{"Maintenance Issues", "Other Issues", "Permit Issues", "Safety Issues", "Specific Area Issues"}, d.Categories())

	minYear, maxYear, ok := d.YearBounds()
	assert.True(t, ok)
	assert.Equal(t, 2015, minYear)
	assert.Equal(t, 2021, maxYear)

	_, _, ok = NewDataset(nil).YearBounds()
	assert.False(t, ok)
}
