package services

import (
	"context"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/repositories"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// SessionService resolves who is acting on a request
type SessionService interface {
	MockLogin(ctx context.Context, input dto.MockLoginInput) (models.Session, error)
	CurrentSession(ctx context.Context) (models.Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	DefaultSession(ctx context.Context) (models.Session, error)
}

type sessionServiceImpl struct {
	userRepo repositories.UserRepository
	logger   zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(userRepo repositories.UserRepository, logger zerolog.Logger) SessionService {
	return &sessionServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// MockLogin picks a seeded user and returns the session for it. The caller
// is responsible for carrying the session to later requests.
func (s *sessionServiceImpl) MockLogin(ctx context.Context, input dto.MockLoginInput) (models.Session, error) {
	user, err := s.pickUser(ctx, input)
	if err != nil {
		return models.Session{}, err
	}
	if user == nil {
		return models.Session{}, apperrors.NewResourceNotFoundError("No user matched the mock login request.")
	}

	session := models.SessionForUser(user)
	s.logger.Info().
		Str("user_id", session.UserID).
		Str("role", string(session.Role)).
		Str("campus_id", session.CampusID).
		Msg("mock login")
	return session, nil
}

func (s *sessionServiceImpl) pickUser(ctx context.Context, input dto.MockLoginInput) (*models.User, error) {
	if input.UserID != nil && *input.UserID != "" {
		user, err := s.userRepo.FindByID(ctx, *input.UserID)
		if err != nil || user == nil || user.IsDeleted() {
			return nil, err
		}
		return user, nil
	}

	if !input.Role.IsValid() {
		return nil, apperrors.NewBadRequestError("role or user_id is required.")
	}

	filter := repositories.UserFilter{
		Role:        input.Role,
		StudentType: input.StudentType,
	}
	if input.CampusID != nil && *input.CampusID != "" {
		filter.CampusID = *input.CampusID
	} else {
		current, err := s.CurrentSession(ctx)
		if err != nil {
			return nil, err
		}
		filter.CampusID = current.CampusID
	}
	return s.userRepo.FindFirst(ctx, filter)
}

// CurrentSession returns the session carried by ctx, or the default session
func (s *sessionServiceImpl) CurrentSession(ctx context.Context) (models.Session, error) {
	if session, ok := auth.SessionFromContext(ctx); ok {
		return session, nil
	}
	return s.DefaultSession(ctx)
}

func (s *sessionServiceImpl) CurrentUser(ctx context.Context) (*models.User, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, apperrors.NewResourceNotFoundError("Current user not found.")
	}
	return user, nil
}

// DefaultSession acts as the first seeded student.
func (s *sessionServiceImpl) DefaultSession(ctx context.Context) (models.Session, error) {
	user, err := s.userRepo.FindFirst(ctx, repositories.UserFilter{Role: models.RoleStudent})
	if err != nil {
		return models.Session{}, err
	}
	if user == nil {
		return models.Session{}, apperrors.NewResourceNotFoundError("Seed user for default session is missing.")
	}
	return models.SessionForUser(user), nil
}
