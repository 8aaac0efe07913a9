package middleware

import (
	"errors"
	"net/http"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatusForKind maps an error kind onto an HTTP status code
func StatusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes err as a failed Result. Errors outside the domain
// taxonomy are reported with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	message := "Internal server error."
	if kind != apperrors.KindInternal {
		message = err.Error()
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			message = custom.Message
		}
	}
	c.AbortWithStatusJSON(StatusForKind(kind), dto.Failure[any](kind, message))
}

// Recovery converts panics in handlers into an INTERNAL_ERROR Result
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("handler panicked")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.Failure[any](apperrors.KindInternal, "Internal server error."))
			}
		}()
		c.Next()
	}
}

// NoRoute answers unknown paths with a NOT_FOUND Result
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.Failure[any](apperrors.KindNotFound, "Route not found."))
}
