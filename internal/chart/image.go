package chart

import (
	"image/color"
	"io"

	"violations-dashboard/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	topColor    = color.RGBA{R: 0xFF, G: 0x57, B: 0x33, A: 0xFF}
	bottomColor = color.RGBA{R: 0x8C, G: 0x2D, B: 0x19, A: 0xFF}
)

// WriteTopBottomPNG draws the city ranking as a single PNG bar chart: the
// top cities first, then the bottom ones.
func WriteTopBottomPNG(w io.Writer, tb *models.TopBottomCities) error {
	if len(tb.Top) == 0 || len(tb.Bottom) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Cities with Most and Least Building Violations"
	p.Y.Label.Text = "Number of Violations"
	p.Legend.Top = true

	top, err := cityBars(tb.Top, 0, topColor)
	if err != nil {
		return err
	}
	bottom, err := cityBars(tb.Bottom, float64(len(tb.Top)), bottomColor)
	if err != nil {
		return err
	}
	p.Add(top, bottom)
	p.Legend.Add("Most violations", top)
	p.Legend.Add("Least violations", bottom)

	names := make([]string, 0, len(tb.Top)+len(tb.Bottom))
	for _, c := range tb.Top {
		names = append(names, c.City)
	}
	for _, c := range tb.Bottom {
		names = append(names, c.City)
	}
	p.NominalX(names...)

	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func cityBars(counts []models.CityCount, offset float64, fill color.Color) (*plotter.BarChart, error) {
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.XMin = offset
	bars.Color = fill
	bars.LineStyle.Width = 0
	return bars, nil
}
