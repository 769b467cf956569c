package models

// CityCount is the number of violations recorded for a city.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// CategoryCount is the number of violations in a grouped category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CityCategoryCounts holds the category breakdown of a single city.
type CityCategoryCounts struct {
	City       string          `json:"city"`
	Categories []CategoryCount `json:"categories"`
}

// StatusCount tallies closed and open violations.
type StatusCount struct {
	Closed int `json:"closed"`
	Open   int `json:"open"`
}

// CodeSummary holds the total number of violations and distinct codes.
type CodeSummary struct {
	Total       int `json:"total"`
	UniqueCodes int `json:"unique_codes"`
}

// CityRanking names the cities with the most and least violations.
type CityRanking struct {
	Most  CityCount `json:"most"`
	Least CityCount `json:"least"`
}

// Summary is the overview panel of the dashboard.
type Summary struct {
	Ranking             *CityRanking `json:"ranking"`
	MostCommonViolation string       `json:"most_common_violation,omitempty"`
	Status              StatusCount  `json:"status"`
	Codes               CodeSummary  `json:"codes"`
}

// TopBottomCities lists the cities at both ends of the violation ranking.
type TopBottomCities struct {
	Top    []CityCount `json:"top"`
	Bottom []CityCount `json:"bottom"`
}

// FilterOptions carries the values offered by the dashboard filter widgets.
type FilterOptions struct {
	Cities     []string `json:"cities"`
	Codes      []string `json:"codes"`
	Categories []string `json:"categories"`
	YearMin    int      `json:"year_min"`
	YearMax    int      `json:"year_max"`
}

// MapPoint is one violation plotted on the map.
type MapPoint struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Color       [4]uint8 `json:"color"`
}

// MapView is the data behind the map panel: the points and the area they cover.
type MapView struct {
	Points    []MapPoint `json:"points"`
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	MinLat    float64    `json:"min_lat"`
	MinLon    float64    `json:"min_lon"`
	MaxLat    float64    `json:"max_lat"`
	MaxLon    float64    `json:"max_lon"`
}
