package controllers

import (
	"net/http"

	"github.com/campulist/campulist/internal/app/services"
	"github.com/gin-gonic/gin"
)

// CampusController serves the campus directory
type CampusController struct {
	api *services.API
}

// NewCampusController creates a new CampusController
func NewCampusController(api *services.API) *CampusController {
	return &CampusController{api: api}
}

// ListCampuses returns the active campuses
// @Router /campuses [get]
func (c *CampusController) ListCampuses(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.api.ListCampuses(ctx.Request.Context()))
}
