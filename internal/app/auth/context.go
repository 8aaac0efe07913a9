package auth

import (
	"context"

	"github.com/campulist/campulist/internal/app/models"
)

type sessionKey struct{}

// ContextWithSession attaches the acting session to ctx.
func ContextWithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session placed by ContextWithSession.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}
