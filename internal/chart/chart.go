// Package chart renders dashboard panels as go-echarts HTML pages and
// gonum/plot images.
package chart

import (
	"errors"
	"fmt"
	"slices"

	"violations-dashboard/internal/analytics"
	"violations-dashboard/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("chart: no data to plot")

// BarColor is the fill used by the city ranking bars.
const BarColor = "#FF5733"

// TopBottomPage draws the cities with the most and least violations as two bar charts.
func TopBottomPage(tb *models.TopBottomCities) (*components.Page, error) {
	if len(tb.Top) == 0 && len(tb.Bottom) == 0 {
		return nil, ErrNoData
	}

	page := components.NewPage()
	page.AddCharts(
		cityBar(fmt.Sprintf("Top %d Cities with Most Violations", len(tb.Top)), tb.Top),
		cityBar(fmt.Sprintf("Bottom %d Cities with Least Violations", len(tb.Bottom)), tb.Bottom),
	)
	return page, nil
}

func cityBar(title string, counts []models.CityCount) *charts.Bar {
	names := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		names[i] = c.City
		data[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Violations"}),
	)
	bar.SetXAxis(names).
		AddSeries("violations", data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: BarColor}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// CategoryBar draws one bar series per selected city over the grouped
// categories present in any of them.
func CategoryBar(breakdown []models.CityCategoryCounts) (*charts.Bar, error) {
	var categories []string
	for _, city := range breakdown {
		for _, c := range city.Categories {
			if !slices.Contains(categories, c.Category) {
				categories = append(categories, c.Category)
			}
		}
	}
	if len(categories) == 0 {
		return nil, ErrNoData
	}
	slices.Sort(categories)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Violations by Category", Width: "1100px", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: "Violation Count by Grouped Description in Selected Cities"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Grouped Violation Descriptions"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Violations"}),
	)
	bar.SetXAxis(categories)

	for _, city := range breakdown {
		counts := make(map[string]int, len(city.Categories))
		for _, c := range city.Categories {
			counts[c.Category] = c.Count
		}
		data := make([]opts.BarData, len(categories))
		for i, category := range categories {
			data[i] = opts.BarData{Value: counts[category]}
		}
		bar.AddSeries(city.City, data)
	}
	return bar, nil
}

// ViolationMap plots violations by longitude and latitude, one colored
// series per category.
func ViolationMap(view *models.MapView) *charts.Scatter {
	series := make(map[string][]opts.ScatterData)
	colors := make(map[string]analytics.RGBA)
	var order []string
	for _, p := range view.Points {
		if _, ok := series[p.Category]; !ok {
			order = append(order, p.Category)
			colors[p.Category] = analytics.RGBA(p.Color)
		}
		series[p.Category] = append(series[p.Category], opts.ScatterData{
			Name:  p.Description,
			Value: []interface{}{p.Longitude, p.Latitude},
		})
	}
	slices.Sort(order)

	pad := 0.01
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Map of Building Violations", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Map of Building Violations", Subtitle: fmt.Sprintf("%d violations", len(view.Points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Min: view.MinLon - pad, Max: view.MaxLon + pad, Name: "Longitude", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: view.MinLat - pad, Max: view.MaxLat + pad, Name: "Latitude", NameLocation: "middle", NameGap: 40}),
	)
	for _, category := range order {
		scatter.AddSeries(category, series[category],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(colors[category])}),
		)
	}
	return scatter
}

func cssColor(c analytics.RGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c[0], c[1], c[2], float64(c[3])/255)
}
