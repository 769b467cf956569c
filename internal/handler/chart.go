package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"violations-dashboard/internal/chart"
	"violations-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ChartHandler serves the dashboard panels as rendered charts
type ChartHandler struct {
	service DashboardService
	years   YearBounds
}

// NewChartHandler creates a new chart handler
func NewChartHandler(svc DashboardService, years YearBounds) *ChartHandler {
	return &ChartHandler{service: svc, years: years}
}

// Register mounts the chart routes on r.
func (h *ChartHandler) Register(r gin.IRouter) {
	r.GET("/map", h.Map)
	r.GET("/top-bottom", h.TopBottom)
	r.GET("/top-bottom.png", h.TopBottomPNG)
	r.GET("/categories", h.Categories)
}

type renderer interface {
	Render(w io.Writer) error
}

// Map handles GET /charts/map requests
//
//	@Summary	Violation map as an interactive chart
//	@Tags		charts
//	@Produce	html
//	@Param		year_start	query		int			false	"First year, inclusive"
//	@Param		year_end	query		int			false	"Last year, inclusive"
//	@Param		category	query		[]string	false	"Violation categories"	collectionFormat(multi)
//	@Success	200			{string}	string		"HTML page"
//	@Failure	400			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/charts/map [get]
func (h *ChartHandler) Map(c *gin.Context) {
	start, end, ok := yearRange(c, h.years)
	if !ok {
		return
	}

	view, err := h.service.MapView(c.Request.Context(), service.MapQuery{
		YearStart:  start,
		YearEnd:    end,
		Categories: c.QueryArray("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	writeHTML(c, chart.ViolationMap(view))
}

// TopBottom handles GET /charts/top-bottom requests
//
//	@Summary	Top and bottom cities as bar charts
//	@Tags		charts
//	@Produce	html
//	@Param		n	query		int		false	"Cities per list"
//	@Success	200	{string}	string	"HTML page"
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/charts/top-bottom [get]
func (h *ChartHandler) TopBottom(c *gin.Context) {
	n, ok := positiveInt(c, "n")
	if !ok {
		return
	}

	tb, err := h.service.TopBottomCities(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := chart.TopBottomPage(tb)
	if err != nil {
		respondChartError(c, err)
		return
	}
	writeHTML(c, page)
}

// TopBottomPNG handles GET /charts/top-bottom.png requests
//
//	@Summary	Top and bottom cities as a PNG image
//	@Tags		charts
//	@Produce	png
//	@Param		n	query	int	false	"Cities per list"
//	@Success	200	{file}	binary
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/charts/top-bottom.png [get]
func (h *ChartHandler) TopBottomPNG(c *gin.Context) {
	n, ok := positiveInt(c, "n")
	if !ok {
		return
	}

	tb, err := h.service.TopBottomCities(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.WriteTopBottomPNG(&buf, tb); err != nil {
		respondChartError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Categories handles GET /charts/categories requests
//
//	@Summary	Violation categories per city as grouped bars
//	@Tags		charts
//	@Produce	html
//	@Param		city		query		[]string	true	"Cities"				collectionFormat(multi)
//	@Param		category	query		[]string	false	"Violation categories"	collectionFormat(multi)
//	@Success	200			{string}	string		"HTML page"
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/charts/categories [get]
func (h *ChartHandler) Categories(c *gin.Context) {
	cities := c.QueryArray("city")
	if len(cities) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: noCitiesMessage})
		return
	}

	breakdown, err := h.service.CategoryBreakdown(c.Request.Context(), cities, c.QueryArray("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	bar, err := chart.CategoryBar(breakdown)
	if err != nil {
		respondChartError(c, err)
		return
	}
	writeHTML(c, bar)
}

func writeHTML(c *gin.Context, r renderer) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func respondChartError(c *gin.Context, err error) {
	if errors.Is(err, chart.ErrNoData) {
		_ = c.Error(err)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no building violations to plot"})
		return
	}
	respondError(c, err)
}
