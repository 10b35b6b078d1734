package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

type HealthStatus struct {
	Status string `json:"status"`
}

// Health handles GET /health
func Health(c *gin.Context) {
	utils.OKResponse(c, HealthStatus{Status: "ok"})
}
