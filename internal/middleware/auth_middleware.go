package middleware

import (
	"errors"
	"net/http"

	appAuth "github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	pkgAuth "github.com/campulist/campulist/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionContextKey is the gin context key holding the decoded session
const SessionContextKey = "session"

// AuthMiddleware turns session tokens into request-scoped sessions
type AuthMiddleware struct {
	jwtService *pkgAuth.JWTService
	cookieName string
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *pkgAuth.JWTService, cookieName string, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		logger:     logger,
	}
}

// SessionAuth reads the token from the Authorization header or the session
// cookie. Requests without a token pass through and act as the default
// session; requests with a bad token are rejected.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := m.tokenFrom(c)
		if !present {
			c.Next()
			return
		}
		if err != nil {
			m.reject(c, "Invalid session token format.")
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			message := "Session token is invalid."
			if errors.Is(err, pkgAuth.ErrExpiredToken) {
				message = "Session token has expired."
			}
			m.logger.Debug().Err(err).Str("path", c.FullPath()).Msg("session token rejected")
			m.reject(c, message)
			return
		}

		session := claims.Session()
		c.Set(SessionContextKey, session)
		c.Request = c.Request.WithContext(appAuth.ContextWithSession(c.Request.Context(), session))
		c.Next()
	}
}

func (m *AuthMiddleware) tokenFrom(c *gin.Context) (token string, present bool, err error) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, err = pkgAuth.ExtractBearerToken(header)
		return token, true, err
	}
	if m.cookieName != "" {
		if cookie, cerr := c.Cookie(m.cookieName); cerr == nil && cookie != "" {
			return cookie, true, nil
		}
	}
	return "", false, nil
}

func (m *AuthMiddleware) reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure[any](apperrors.KindUnauthorized, message))
}

// SessionFromGin returns the session placed by SessionAuth, if any
func SessionFromGin(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}
