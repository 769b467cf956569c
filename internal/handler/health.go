package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports that the server is up.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health requests
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
