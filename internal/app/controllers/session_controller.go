package controllers

import (
	"net/http"
	"time"

	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/middleware"
	pkgAuth "github.com/campulist/campulist/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionController handles the mock session endpoints
type SessionController struct {
	api          *services.API
	jwtService   *pkgAuth.JWTService
	cookieName   string
	secureCookie bool
	logger       zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(api *services.API, jwtService *pkgAuth.JWTService, cookieName string, secureCookie bool, logger zerolog.Logger) *SessionController {
	return &SessionController{
		api:          api,
		jwtService:   jwtService,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// GetSession returns the session acting for this request
// @Router /session [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.api.GetSession(ctx.Request.Context()))
}

// MockLogin switches to a seeded user and issues a session token for it.
// The token is returned in the body and also set as an HttpOnly cookie.
// @Router /session/mock-login [post]
func (c *SessionController) MockLogin(ctx *gin.Context) {
	var input dto.MockLoginInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	res := c.api.Login(ctx.Request.Context(), input)
	if !res.OK {
		respond(ctx, http.StatusOK, res)
		return
	}

	token, expiresAt, err := c.jwtService.GenerateToken(res.Data)
	if err != nil {
		c.logger.Error().Err(err).Str("user_id", res.Data.UserID).Msg("Failed to sign session token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.cookieName != "" {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(c.cookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", c.secureCookie, true)
	}

	c.logger.Info().
		Str("user_id", res.Data.UserID).
		Str("role", string(res.Data.Role)).
		Str("campus_id", res.Data.CampusID).
		Msg("Mock login")

	respond(ctx, http.StatusOK, dto.Success(dto.LoginResponse{
		Session:   res.Data,
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}))
}

// GetCurrentUser returns the user record behind the session
// @Router /session/me [get]
func (c *SessionController) GetCurrentUser(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.api.GetCurrentUser(ctx.Request.Context()))
}

// AllowedCategories lists the categories the session may post in
// @Router /session/categories [get]
func (c *SessionController) AllowedCategories(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.api.AllowedCategories(ctx.Request.Context()))
}
