package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"violations-dashboard/internal/analytics"
	"violations-dashboard/internal/models"
	"violations-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardService interface for dependency injection
type DashboardService interface {
	Options(context.Context) (*models.FilterOptions, error)
	MapView(context.Context, service.MapQuery) (*models.MapView, error)
	CityRanking(context.Context) (*models.CityRanking, error)
	Summary(context.Context) (*models.Summary, error)
	TopBottomCities(context.Context, int) (*models.TopBottomCities, error)
	CategoryBreakdown(context.Context, []string, []string) ([]models.CityCategoryCounts, error)
	Explore(context.Context, service.ExploreQuery) ([]models.Violation, error)
	Colors(context.Context) (analytics.ColorMap, error)
}

const (
	emptyDatasetMessage = "no building violations match the selected filters"
	noCitiesMessage     = "please select cities to view the data"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// YearBounds is the default year range used when a request names none.
type YearBounds struct {
	Min int
	Max int
}

// DashboardHandler serves the dashboard data as JSON
type DashboardHandler struct {
	service DashboardService
	years   YearBounds
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc DashboardService, years YearBounds) *DashboardHandler {
	return &DashboardHandler{service: svc, years: years}
}

// Register mounts the JSON routes on r.
func (h *DashboardHandler) Register(r gin.IRouter) {
	r.GET("/options", h.Options)
	r.GET("/map", h.Map)
	r.GET("/summary", h.Summary)
	r.GET("/cities/ranking", h.CityRanking)
	r.GET("/cities/top-bottom", h.TopBottomCities)
	r.GET("/categories", h.Categories)
	r.GET("/violations", h.Violations)
	r.GET("/colors", h.Colors)
}

// Options handles GET /api/options requests
//
//	@Summary	Filter widget options
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	models.FilterOptions
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/options [get]
func (h *DashboardHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Map handles GET /api/map requests
//
//	@Summary	Violation locations for the map
//	@Tags		dashboard
//	@Produce	json
//	@Param		year_start	query		int			false	"First year, inclusive"
//	@Param		year_end	query		int			false	"Last year, inclusive"
//	@Param		category	query		[]string	false	"Violation categories"	collectionFormat(multi)
//	@Success	200			{object}	models.MapView
//	@Failure	400			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/api/map [get]
func (h *DashboardHandler) Map(c *gin.Context) {
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
	c.JSON(http.StatusOK, view)
}

// Summary handles GET /api/summary requests
//
//	@Summary	Dataset summary
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	models.Summary
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CityRanking handles GET /api/cities/ranking requests
//
//	@Summary	City with the most and the least violations
//	@Tags		cities
//	@Produce	json
//	@Success	200	{object}	models.CityRanking
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/cities/ranking [get]
func (h *DashboardHandler) CityRanking(c *gin.Context) {
	ranking, err := h.service.CityRanking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// TopBottomCities handles GET /api/cities/top-bottom requests
//
//	@Summary	Top and bottom cities by violation count
//	@Tags		cities
//	@Produce	json
//	@Param		n	query		int	false	"Cities per list"
//	@Success	200	{object}	models.TopBottomCities
//	@Failure	400	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/cities/top-bottom [get]
func (h *DashboardHandler) TopBottomCities(c *gin.Context) {
	n, ok := positiveInt(c, "n")
	if !ok {
		return
	}

	result, err := h.service.TopBottomCities(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Categories handles GET /api/categories requests
//
//	@Summary	Violation categories per selected city
//	@Tags		dashboard
//	@Produce	json
//	@Param		city		query	[]string	true	"Cities"				collectionFormat(multi)
//	@Param		category	query	[]string	false	"Violation categories"	collectionFormat(multi)
//	@Success	200			{array}		models.CityCategoryCounts
//	@Failure	400			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/api/categories [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
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
	c.JSON(http.StatusOK, breakdown)
}

// Violations handles GET /api/violations requests
//
//	@Summary	Filtered violation records
//	@Tags		dashboard
//	@Produce	json
//	@Param		year_start	query	int			false	"First year, inclusive"
//	@Param		year_end	query	int			false	"Last year, inclusive"
//	@Param		code		query	string		false	"Violation code or All"
//	@Param		city		query	[]string	false	"Cities"	collectionFormat(multi)
//	@Param		q			query	string		false	"Free-text city"
//	@Success	200			{array}		models.Violation
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse	"Nothing matches; the message names the selected cities"
//	@Failure	500			{object}	ErrorResponse
//	@Router		/api/violations [get]
func (h *DashboardHandler) Violations(c *gin.Context) {
	start, end, ok := yearRange(c, h.years)
	if !ok {
		return
	}

	query := service.ExploreQuery{
		YearStart: start,
		YearEnd:   end,
		Code:      c.DefaultQuery("code", analytics.AllCodes),
		Cities:    c.QueryArray("city"),
		Search:    c.Query("q"),
	}
	violations, err := h.service.Explore(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(violations) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: emptySelectionMessage(query)})
		return
	}
	c.JSON(http.StatusOK, violations)
}

// emptySelectionMessage names the selected cities when a filter matches nothing.
func emptySelectionMessage(q service.ExploreQuery) string {
	cities := q.Cities
	if q.Search != "" {
		cities = append(slices.Clip(cities), q.Search)
	}
	if len(cities) == 0 {
		return emptyDatasetMessage
	}
	return "no building violations in " + strings.Join(cities, ", ")
}

type colorResponse struct {
	RGBA analytics.RGBA `json:"rgba"`
	Hex  string         `json:"hex"`
}

// Colors handles GET /api/colors requests
//
//	@Summary	Category colors
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	map[string]colorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/colors [get]
func (h *DashboardHandler) Colors(c *gin.Context) {
	colors, err := h.service.Colors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make(map[string]colorResponse, len(colors))
	for category, rgba := range colors {
		out[category] = colorResponse{RGBA: rgba, Hex: rgba.Hex()}
	}
	c.JSON(http.StatusOK, out)
}

// yearRange reads year_start and year_end, falling back to the configured
// bounds. It writes a 400 response and returns false on malformed input.
func yearRange(c *gin.Context, years YearBounds) (start, end int, ok bool) {
	start, end = years.Min, years.Max
	for _, p := range []struct {
		name string
		dst  *int
	}{{"year_start", &start}, {"year_end", &end}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid %s format", p.name)})
			return 0, 0, false
		}
		*p.dst = v
	}
	return start, end, true
}

// positiveInt reads an optional positive integer parameter; zero means absent.
func positiveInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("query parameter '%s' must be a positive integer", name)})
		return 0, false
	}
	return v, true
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, analytics.ErrEmptyDataset) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: emptyDatasetMessage})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
