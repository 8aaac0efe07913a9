// Package controllers adapts HTTP requests onto the API facade
package controllers

import (
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respond writes res with status on success, or with the status matching
// its error kind on failure.
func respond[T any](ctx *gin.Context, status int, res dto.Result[T]) {
	if !res.OK {
		ctx.JSON(middleware.StatusForKind(res.Error.Code), dto.Failure[any](res.Error.Code, res.Error.Message))
		return
	}
	ctx.JSON(status, res)
}
