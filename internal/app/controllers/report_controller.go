package controllers

import (
	"net/http"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ReportController handles abuse reports and the moderation queue
type ReportController struct {
	api *services.API
}

// NewReportController creates a new ReportController
func NewReportController(api *services.API) *ReportController {
	return &ReportController{api: api}
}

// CreateReport files a report against a post
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	var input dto.CreateReportInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, c.api.CreateReport(ctx.Request.Context(), input))
}

// ListReports returns the moderation queue. Admin only.
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	var query dto.ReportListQuery
	if err := middleware.BindQuery(ctx, &query); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.ListReports(ctx.Request.Context(), query))
}

// ResolveReport closes a report, optionally hiding the reported post
// @Router /reports/{id}/resolve [post]
func (c *ReportController) ResolveReport(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var input dto.ResolveReportInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.ResolveReport(ctx.Request.Context(), id, input))
}
