package service

import (
	"context"
	"fmt"
	"slices"

	"violations-dashboard/internal/analytics"
	"violations-dashboard/internal/models"

	"github.com/twpayne/go-geom"
)

// Map center used when no filtered violation has coordinates (Boston City Hall area).
const (
	DefaultCenterLat = 42.3601
	DefaultCenterLon = -71.0589
)

// ViolationRepository interface for dependency injection
type ViolationRepository interface {
	LoadViolations(ctx context.Context) ([]models.Violation, error)
}

// Options tunes the dashboard service.
type Options struct {
	ColorScheme string
	ColorSeed   uint64
	TopN        int
	YearMin     int
	YearMax     int
}

// MapQuery selects the violations drawn on the map.
type MapQuery struct {
	YearStart  int
	YearEnd    int
	Categories []string
}

// ExploreQuery is the advanced table filter. Search is a free-text city
// name added to Cities.
type ExploreQuery struct {
	YearStart int
	YearEnd   int
	Code      string
	Cities    []string
	Search    string
}

// DashboardService answers the dashboard panels from a dataset loaded once at startup
type DashboardService struct {
	data *analytics.Analytics
	opts Options
}

// NewDashboardService loads every violation from repo and prepares the analytics context
func NewDashboardService(ctx context.Context, repo ViolationRepository, opts Options) (*DashboardService, error) {
	records, err := repo.LoadViolations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load violations: %w", err)
	}
	if opts.TopN < 1 {
		opts.TopN = 3
	}

	data := analytics.New(records, analytics.ColorOptions{Scheme: opts.ColorScheme, Seed: opts.ColorSeed})
	return &DashboardService{data: data, opts: opts}, nil
}

// Options returns the values offered by the filter widgets
func (s *DashboardService) Options(ctx context.Context) (*models.FilterOptions, error) {
	d := s.data.Dataset()
	return &models.FilterOptions{
		Cities:     d.Cities(),
		Codes:      append([]string{analytics.AllCodes}, d.Codes()...),
		Categories: d.Categories(),
		YearMin:    s.opts.YearMin,
		YearMax:    s.opts.YearMax,
	}, nil
}

// MapView returns the colored points for the selected years and categories
func (s *DashboardService) MapView(ctx context.Context, q MapQuery) (*models.MapView, error) {
	filtered := analytics.Criteria{
		Years:      &analytics.YearRange{Start: q.YearStart, End: q.YearEnd},
		Categories: q.Categories,
	}.Apply(s.data.Dataset())

	view := &models.MapView{Points: []models.MapPoint{}}
	bounds := geom.NewBounds(geom.XY)
	for _, v := range filtered.Records() {
		if !v.HasLocation() {
			continue
		}
		view.Points = append(view.Points, models.MapPoint{
			Latitude:    *v.Latitude,
			Longitude:   *v.Longitude,
			Description: v.Description,
			Category:    v.GroupedDescription,
			Color:       s.data.ColorFor(v.GroupedDescription),
		})
		bounds.Extend(geom.NewPointFlat(geom.XY, []float64{*v.Longitude, *v.Latitude}))
	}

	if bounds.IsEmpty() {
		view.CenterLat, view.CenterLon = DefaultCenterLat, DefaultCenterLon
		view.MinLat, view.MaxLat = DefaultCenterLat, DefaultCenterLat
		view.MinLon, view.MaxLon = DefaultCenterLon, DefaultCenterLon
		return view, nil
	}

	view.MinLon, view.MinLat = bounds.Min(0), bounds.Min(1)
	view.MaxLon, view.MaxLat = bounds.Max(0), bounds.Max(1)
	view.CenterLat = (view.MinLat + view.MaxLat) / 2
	view.CenterLon = (view.MinLon + view.MaxLon) / 2
	return view, nil
}

// CityRanking returns the cities with the most and least violations
func (s *DashboardService) CityRanking(ctx context.Context) (*models.CityRanking, error) {
	most, least, err := analytics.RankCitiesByViolationCount(s.data.Dataset())
	if err != nil {
		return nil, fmt.Errorf("service: failed to rank cities: %w", err)
	}
	return &models.CityRanking{Most: most, Least: least}, nil
}

// Summary returns the overview figures for the whole dataset. Figures that
// need at least one violation are left empty when there is none.
func (s *DashboardService) Summary(ctx context.Context) (*models.Summary, error) {
	d := s.data.Dataset()
	summary := &models.Summary{
		Status: analytics.CountByStatus(d),
		Codes:  analytics.TotalAndUniqueCodes(d),
	}

	if most, least, err := analytics.RankCitiesByViolationCount(d); err == nil {
		summary.Ranking = &models.CityRanking{Most: most, Least: least}
	}
	if desc, err := analytics.MostCommonViolationDescription(d); err == nil {
		summary.MostCommonViolation = desc
	}
	return summary, nil
}

// TopBottomCities returns the n cities with the most and the fewest
// violations; n below 1 uses the configured default
func (s *DashboardService) TopBottomCities(ctx context.Context, n int) (*models.TopBottomCities, error) {
	if n < 1 {
		n = s.opts.TopN
	}
	top, bottom := analytics.TopAndBottomCities(s.data.Dataset(), n)
	return &models.TopBottomCities{Top: top, Bottom: bottom}, nil
}

// CategoryBreakdown counts violations per category for each selected city,
// optionally restricted to some categories
func (s *DashboardService) CategoryBreakdown(ctx context.Context, cities, categories []string) ([]models.CityCategoryCounts, error) {
	filtered := analytics.FilterByCategories(s.data.Dataset(), categories)
	return analytics.CountByCityAndCategory(filtered, cities), nil
}

// Explore returns the violations matching the advanced filter
func (s *DashboardService) Explore(ctx context.Context, q ExploreQuery) ([]models.Violation, error) {
	cities := slices.Clone(q.Cities)
	if q.Search != "" && !slices.Contains(cities, q.Search) {
		cities = append(cities, q.Search)
	}

	filtered := analytics.Criteria{
		Years:  &analytics.YearRange{Start: q.YearStart, End: q.YearEnd},
		Code:   q.Code,
		Cities: cities,
	}.Apply(s.data.Dataset())

	records := filtered.Records()
	if records == nil {
		records = []models.Violation{}
	}
	return records, nil
}

// Colors returns the color assigned to each category
func (s *DashboardService) Colors(ctx context.Context) (analytics.ColorMap, error) {
	return s.data.Colors(), nil
}
