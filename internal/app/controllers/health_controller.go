package controllers

import (
	"net/http"
	"time"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/gin-gonic/gin"
)

// HealthController reports which storage provider serves requests
type HealthController struct {
	provider services.ProviderService
}

// NewHealthController creates a new HealthController
func NewHealthController(provider services.ProviderService) *HealthController {
	return &HealthController{provider: provider}
}

// Health answers 200 when the effective provider is ready and 503 otherwise
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := c.provider.Resolve(ctx.Request.Context())

	resp := dto.HealthResponse{
		Status:   "ok",
		Provider: status,
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK
	if !status.Ready {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, dto.Success(resp))
}
