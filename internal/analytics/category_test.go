package analytics

import (
	"testing"

	"violations-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{name: "specific area", description: "Garages", expected: "Specific Area Issues"},
		{name: "maintenance", description: "Maintenance", expected: MaintenanceCategory},
		{name: "two descriptions share a group", description: "No use of premises permit", expected: "Permit Issues"},
		{name: "unknown description", description: "unknown text", expected: FallbackCategory},
		{name: "match is case sensitive", description: "garages", expected: FallbackCategory},
		{name: "missing description", description: "", expected: FallbackCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.description))
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{
		"Maintenance Issues",
		"Occupancy Issues",
		"Other Issues",
		"Permit Issues",
		"Premise Use Issues",
		"Safety Issues",
		"Specific Area Issues",
	}, Categories())
}

func TestNewDataset_FillsGroupedDescription(t *testing.T) {
	d := sampleDataset()

	for _, r := range d.Records() {
		assert.NotEmpty(t, r.GroupedDescription)
		assert.Equal(t, Normalize(r.Description), r.GroupedDescription)
	}
}

func TestNewDataset_DoesNotAliasInput(t *testing.T) {
	records := []models.Violation{violation("Boston", "1", "Garages", "Open", 2020)}
	d := NewDataset(records)

	records[0].City = "Changed"
	assert.Equal(t, "Boston", d.Records()[0].City)
	assert.Empty(t, records[0].GroupedDescription)
}
