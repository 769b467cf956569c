// Package analytics filters and summarizes the building-violations dataset.
// Everything here is a pure function over an in-memory Dataset.
package analytics

import (
	"maps"

	"violations-dashboard/internal/models"
)

// Analytics is the normalized dataset together with its category colors.
// It is built once and never modified, so it is safe for concurrent readers.
type Analytics struct {
	data   Dataset
	colors ColorMap
}

// New normalizes records and assigns colors to the categories they contain.
func New(records []models.Violation, opts ColorOptions) *Analytics {
	data := NewDataset(records)
	return &Analytics{
		data:   data,
		colors: BuildColorMap(data.Categories(), opts),
	}
}

// Dataset returns the full normalized dataset.
func (a *Analytics) Dataset() Dataset {
	return a.data
}

// Colors returns a copy of the category color map.
func (a *Analytics) Colors() ColorMap {
	return maps.Clone(a.colors)
}

// ColorFor returns the color assigned to category.
func (a *Analytics) ColorFor(category string) RGBA {
	return a.colors.ColorFor(category)
}
