package analytics

import (
	"cmp"
	"errors"
	"slices"

	"violations-dashboard/internal/models"
)

// ErrEmptyDataset is returned by aggregates that need at least one matching record.
var ErrEmptyDataset = errors.New("analytics: no matching violations")

const (
	StatusClosed = "Closed"
	StatusOpen   = "Open"
)

// RankCitiesByViolationCount returns the cities with the most and the
// fewest violations. Ties go to the lexicographically smallest city.
func RankCitiesByViolationCount(d Dataset) (most, least models.CityCount, err error) {
	counts := cityCounts(d)
	if len(counts) == 0 {
		return models.CityCount{}, models.CityCount{}, ErrEmptyDataset
	}
	slices.SortFunc(counts, byCountDesc)
	most = counts[0]
	slices.SortFunc(counts, byCountAsc)
	least = counts[0]
	return most, least, nil
}

// TopAndBottomCities returns the n cities with the most violations
// (descending) and the n with the fewest (ascending). With fewer than n
// cities both lists hold every city.
func TopAndBottomCities(d Dataset, n int) (top, bottom []models.CityCount) {
	if n <= 0 {
		return []models.CityCount{}, []models.CityCount{}
	}
	counts := cityCounts(d)
	n = min(n, len(counts))

	slices.SortFunc(counts, byCountDesc)
	top = slices.Clone(counts[:n])
	slices.SortFunc(counts, byCountAsc)
	bottom = slices.Clone(counts[:n])
	return top, bottom
}

// CountByCategory counts the violations of each grouped category among
// records located in cities, ordered by count descending then category.
// No selected cities means no matching records.
func CountByCategory(d Dataset, cities []string) []models.CategoryCount {
	out := []models.CategoryCount{}
	if len(cities) == 0 {
		return out
	}
	counts := make(map[string]int)
	for _, r := range FilterByCities(d, cities).records {
		counts[r.GroupedDescription]++
	}
	for category, n := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: n})
	}
	slices.SortFunc(out, func(a, b models.CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// CountByCityAndCategory breaks CountByCategory down per city, keeping the
// order in which cities were selected. Duplicate selections are dropped.
func CountByCityAndCategory(d Dataset, cities []string) []models.CityCategoryCounts {
	out := []models.CityCategoryCounts{}
	seen := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		if _, dup := seen[city]; dup {
			continue
		}
		seen[city] = struct{}{}
		out = append(out, models.CityCategoryCounts{
			City:       city,
			Categories: CountByCategory(d, []string{city}),
		})
	}
	return out
}

// MostCommonViolationDescription returns the most frequent raw description.
// Ties go to the description seen first. Missing descriptions are ignored.
func MostCommonViolationDescription(d Dataset) (string, error) {
	counts := make(map[string]int)
	var order []string
	for _, r := range d.records {
		if r.Description == "" {
			continue
		}
		if _, ok := counts[r.Description]; !ok {
			order = append(order, r.Description)
		}
		counts[r.Description]++
	}
	if len(order) == 0 {
		return "", ErrEmptyDataset
	}
	best := order[0]
	for _, desc := range order[1:] {
		if counts[desc] > counts[best] {
			best = desc
		}
	}
	return best, nil
}

// CountByStatus tallies Closed and Open violations. Other statuses are ignored.
func CountByStatus(d Dataset) models.StatusCount {
	var sc models.StatusCount
	for _, r := range d.records {
		switch r.Status {
		case StatusClosed:
			sc.Closed++
		case StatusOpen:
			sc.Open++
		}
	}
	return sc
}

// TotalAndUniqueCodes returns the record count and the number of distinct codes.
func TotalAndUniqueCodes(d Dataset) models.CodeSummary {
	return models.CodeSummary{Total: d.Len(), UniqueCodes: len(d.Codes())}
}

func cityCounts(d Dataset) []models.CityCount {
	counts := make(map[string]int)
	for _, r := range d.records {
		if r.City != "" {
			counts[r.City]++
		}
	}
	out := make([]models.CityCount, 0, len(counts))
	for city, n := range counts {
		out = append(out, models.CityCount{City: city, Count: n})
	}
	return out
}

func byCountDesc(a, b models.CityCount) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return cmp.Compare(a.City, b.City)
}

func byCountAsc(a, b models.CityCount) int {
	if c := cmp.Compare(a.Count, b.Count); c != 0 {
		return c
	}
	return cmp.Compare(a.City, b.City)
}
