package chart

import (
	"bytes"
	"image/png"
	"testing"

	"violations-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topBottom() *models.TopBottomCities {
	return &models.TopBottomCities{
		Top:    []models.CityCount{{City: "Dorchester", Count: 40}, {City: "Boston", Count: 31}},
		Bottom: []models.CityCount{{City: "Mattapan", Count: 2}, {City: "Hyde Park", Count: 5}},
	}
}

func TestTopBottomPage(t *testing.T) {
	page, err := TopBottomPage(topBottom())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "Top 2 Cities with Most Violations")
	assert.Contains(t, html, "Bottom 2 Cities with Least Violations")
	assert.Contains(t, html, "Dorchester")
	assert.Contains(t, html, "Mattapan")

	_, err = TopBottomPage(&models.TopBottomCities{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCategoryBar(t *testing.T) {
	bar, err := CategoryBar([]models.CityCategoryCounts{
		{City: "Boston", Categories: []models.CategoryCount{{Category: "Safety Issues", Count: 3}}},
		{City: "Roxbury", Categories: []models.CategoryCount{{Category: "Permit Issues", Count: 1}}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bar.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "Safety Issues")
	assert.Contains(t, html, "Permit Issues")
	assert.Contains(t, html, "Roxbury")

	_, err = CategoryBar([]models.CityCategoryCounts{{City: "Boston", Categories: []models.CategoryCount{}}})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestViolationMap(t *testing.T) {
	view := &models.MapView{
		Points: []models.MapPoint{
			{Latitude: 42.35, Longitude: -71.06, Description: "Maintenance", Category: "Maintenance Issues", Color: [4]uint8{200, 30, 0, 160}},
			{Latitude: 42.31, Longitude: -71.08, Description: "Garages", Category: "Specific Area Issues", Color: [4]uint8{1, 2, 3, 160}},
		},
		MinLat: 42.31, MaxLat: 42.35, MinLon: -71.08, MaxLon: -71.06,
	}

	var buf bytes.Buffer
	require.NoError(t, ViolationMap(view).Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "Map of Building Violations")
	assert.Contains(t, html, "rgba(200,30,0,0.63)")
	assert.Contains(t, html, "Specific Area Issues")
}

func TestWriteTopBottomPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTopBottomPNG(&buf, topBottom()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())

	err = WriteTopBottomPNG(&bytes.Buffer{}, &models.TopBottomCities{})
	assert.ErrorIs(t, err, ErrNoData)
}
