package analytics

import "violations-dashboard/internal/models"

// AllCodes is the code selection that disables code filtering.
const AllCodes = "All"

// YearRange is an inclusive range of status years.
type YearRange struct {
	Start int
	End   int
}

// FilterByYearRange keeps records whose status year lies in [start, end].
// Records without a parsed timestamp never match.
func FilterByYearRange(d Dataset, start, end int) Dataset {
	return d.where(func(r models.Violation) bool {
		year, ok := r.Year()
		return ok && year >= start && year <= end
	})
}

// FilterByCode keeps records with exactly the given code. AllCodes keeps everything.
func FilterByCode(d Dataset, code string) Dataset {
	if code == AllCodes {
		return d
	}
	return d.where(func(r models.Violation) bool { return r.Code == code })
}

// FilterByCities keeps records located in one of cities. An empty list
// keeps everything.
func FilterByCities(d Dataset, cities []string) Dataset {
	if len(cities) == 0 {
		return d
	}
	set := toSet(cities)
	return d.where(func(r models.Violation) bool {
		_, ok := set[r.City]
		return ok
	})
}

// FilterByCategories keeps records whose grouped description is one of
// categories. An empty list keeps everything.
func FilterByCategories(d Dataset, categories []string) Dataset {
	if len(categories) == 0 {
		return d
	}
	set := toSet(categories)
	return d.where(func(r models.Violation) bool {
		_, ok := set[r.GroupedDescription]
		return ok
	})
}

// Criteria combines the dashboard filters. Zero values disable a filter,
// except Code where the empty string is treated like AllCodes.
type Criteria struct {
	Years      *YearRange
	Code       string
	Cities     []string
	Categories []string
}

// Apply narrows d by every active filter in c.
func (c Criteria) Apply(d Dataset) Dataset {
	if c.Years != nil {
		d = FilterByYearRange(d, c.Years.Start, c.Years.End)
	}
	if c.Code != "" {
		d = FilterByCode(d, c.Code)
	}
	d = FilterByCities(d, c.Cities)
	return FilterByCategories(d, c.Categories)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
