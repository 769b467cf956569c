package analytics

import (
	"slices"

	"violations-dashboard/internal/models"
)

// Dataset is an ordered, read-only collection of violations. Every
// operation that narrows a Dataset returns a new one.
type Dataset struct {
	records []models.Violation
}

// NewDataset copies records and fills in the grouped description of each one.
func NewDataset(records []models.Violation) Dataset {
	out := make([]models.Violation, len(records))
	for i, r := range records {
		r.GroupedDescription = Normalize(r.Description)
		out[i] = r
	}
	return Dataset{records: out}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records in their original order.
func (d Dataset) Records() []models.Violation {
	return slices.Clone(d.records)
}

func (d Dataset) where(keep func(models.Violation) bool) Dataset {
	var out []models.Violation
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Dataset{records: out}
}

// Cities returns the distinct non-empty cities, sorted.
func (d Dataset) Cities() []string {
	return d.distinct(func(r models.Violation) string { return r.City })
}

// Codes returns the distinct non-empty violation codes, sorted.
func (d Dataset) Codes() []string {
	return d.distinct(func(r models.Violation) string { return r.Code })
}

// Categories returns the distinct grouped descriptions present, sorted.
func (d Dataset) Categories() []string {
	return d.distinct(func(r models.Violation) string { return r.GroupedDescription })
}

// YearBounds returns the earliest and latest status year. ok is false when
// no record has a parsed timestamp.
func (d Dataset) YearBounds() (minYear, maxYear int, ok bool) {
	for _, r := range d.records {
		year, has := r.Year()
		if !has {
			continue
		}
		if !ok || year < minYear {
			minYear = year
		}
		if !ok || year > maxYear {
			maxYear = year
		}
		ok = true
	}
	return minYear, maxYear, ok
}

func (d Dataset) distinct(field func(models.Violation) string) []string {
	seen := make(map[string]struct{})
	for _, r := range d.records {
		if v := field(r); v != "" {
			seen[v] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
