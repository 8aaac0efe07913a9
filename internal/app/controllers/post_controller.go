package controllers

import (
	"net/http"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/middleware"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// PostController handles the post board
type PostController struct {
	api *services.API
}

// NewPostController creates a new PostController
func NewPostController(api *services.API) *PostController {
	return &PostController{api: api}
}

// ListPosts returns the posts visible to the session
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	var query dto.PostListQuery
	if err := middleware.BindQuery(ctx, &query); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.ListPosts(ctx.Request.Context(), query))
}

// GetPost returns one post and counts the view
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.GetPost(ctx.Request.Context(), id))
}

// CreatePost publishes a new listing
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var input dto.CreatePostInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if input.PromotionUntil != nil && !input.IsPromoted {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("promotion_until requires is_promoted to be true."))
		return
	}
	respond(ctx, http.StatusCreated, c.api.CreatePost(ctx.Request.Context(), input))
}

// UpdatePost applies a partial update
// @Router /posts/{id} [patch]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var input dto.UpdatePostInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.UpdatePost(ctx.Request.Context(), id, input))
}

// DeletePost soft-deletes a post
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.DeletePost(ctx.Request.Context(), id))
}

// PromotePost marks a post as promoted until the given instant
// @Router /posts/{id}/promote [post]
func (c *PostController) PromotePost(ctx *gin.Context) {
	id, err := middleware.UUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var input dto.PromotePostInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.api.PromotePost(ctx.Request.Context(), id, input.PromotionUntil))
}
