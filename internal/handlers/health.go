package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"neuroforge-backend/internal/models"
)

const serviceName = "neuroforge-backend"

// HealthHandler godoc
// @Summary     Health check
// @Description Liveness probe for the NeuroForge API. It does not touch the record store or any vendor.
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}
