package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/repositories"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// internalErrorMessage replaces the text of any error outside the domain taxonomy
const internalErrorMessage = "Unexpected API error."

// ChatNotifier receives every message stored through the API
type ChatNotifier interface {
	PublishMessage(msg *models.ChatMessage)
}

// API is the single entry point for transport adapters. Every operation
// resolves the acting session from ctx, calls the repositories and folds the
// outcome into a dto.Result.
type API struct {
	sessions SessionService
	users    repositories.UserRepository
	posts    repositories.PostRepository
	chats    repositories.ChatRepository
	reports  repositories.ReportRepository
	notifier ChatNotifier
	logger   zerolog.Logger
}

// NewAPI creates a new API. notifier may be nil.
func NewAPI(repos *repositories.Repositories, sessions SessionService, notifier ChatNotifier, logger zerolog.Logger) *API {
	return &API{
		sessions: sessions,
		users:    repos.UserRepository,
		posts:    repos.PostRepository,
		chats:    repos.ChatRepository,
		reports:  repos.ReportRepository,
		notifier: notifier,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// run resolves the session, executes fn and converts its outcome. Panics are
// reported as internal errors.
func run[T any](ctx context.Context, a *API, op string, fn func(session models.Session) (T, error)) (res dto.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Str("op", op).Interface("panic", r).Msg("api operation panicked")
			res = dto.Failure[T](apperrors.KindInternal, internalErrorMessage)
		}
	}()

	session, err := a.sessions.CurrentSession(ctx)
	if err != nil {
		return fail[T](a, op, err)
	}

	data, err := fn(session)
	if err != nil {
		return fail[T](a, op, err)
	}
	return dto.Success(data)
}

func (a *API) failKind(op string, err error) (apperrors.Kind, string) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		a.logger.Error().Err(err).Str("op", op).Msg("api operation failed")
		return kind, internalErrorMessage
	}

	message := err.Error()
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}
	a.logger.Debug().Str("op", op).Str("kind", string(kind)).Msg(message)
	return kind, message
}

func fail[T any](a *API, op string, err error) dto.Result[T] {
	kind, message := a.failKind(op, err)
	return dto.Failure[T](kind, message)
}

// Login selects a seeded user and returns the resulting session.
func (a *API) Login(ctx context.Context, input dto.MockLoginInput) dto.Result[models.Session] {
	return run(ctx, a, "login", func(_ models.Session) (models.Session, error) {
		return a.sessions.MockLogin(ctx, input)
	})
}

func (a *API) GetSession(ctx context.Context) dto.Result[models.Session] {
	return run(ctx, a, "get_session", func(session models.Session) (models.Session, error) {
		return session, nil
	})
}

func (a *API) GetCurrentUser(ctx context.Context) dto.Result[*models.User] {
	return run(ctx, a, "get_current_user", func(_ models.Session) (*models.User, error) {
		return a.sessions.CurrentUser(ctx)
	})
}

// AllowedCategories lists the categories the session may post in.
func (a *API) AllowedCategories(ctx context.Context) dto.Result[[]models.PostCategory] {
	return run(ctx, a, "allowed_categories", func(session models.Session) ([]models.PostCategory, error) {
		return auth.AllowedCategoriesForRole(session.Role), nil
	})
}

func (a *API) ListCampuses(ctx context.Context) dto.Result[[]*models.Campus] {
	return run(ctx, a, "list_campuses", func(_ models.Session) ([]*models.Campus, error) {
		return a.users.ListCampuses(ctx, true)
	})
}

func (a *API) ListPosts(ctx context.Context, query dto.PostListQuery) dto.Result[dto.ListResult[dto.PostResponse]] {
	return run(ctx, a, "list_posts", func(session models.Session) (dto.ListResult[dto.PostResponse], error) {
		page, err := a.posts.List(ctx, query, session)
		if err != nil {
			return dto.ListResult[dto.PostResponse]{}, err
		}
		names, err := a.campusNames(ctx)
		if err != nil {
			return dto.ListResult[dto.PostResponse]{}, err
		}
		return dto.MapList(page, func(p *models.Post) dto.PostResponse {
			return dto.NewPostResponse(p, names[p.CampusID])
		}), nil
	})
}

// GetPost returns a readable post and counts the view.
func (a *API) GetPost(ctx context.Context, id string) dto.Result[dto.PostResponse] {
	return run(ctx, a, "get_post", func(session models.Session) (dto.PostResponse, error) {
		post, err := a.posts.GetByID(ctx, id, session)
		if err != nil {
			return dto.PostResponse{}, err
		}
		if post == nil {
			return dto.PostResponse{}, apperrors.NewResourceNotFoundError("Post not found.")
		}

		if err := a.posts.IncrementViewCount(ctx, id, session); err != nil {
			a.logger.Warn().Err(err).Str("post_id", id).Msg("view count not incremented")
		} else if fresh, err := a.posts.GetByID(ctx, id, session); err == nil && fresh != nil {
			post = fresh
		}
		return a.postResponse(ctx, post)
	})
}

func (a *API) CreatePost(ctx context.Context, input dto.CreatePostInput) dto.Result[dto.PostResponse] {
	return run(ctx, a, "create_post", func(session models.Session) (dto.PostResponse, error) {
		post, err := a.posts.Create(ctx, input, session)
		if err != nil {
			return dto.PostResponse{}, err
		}
		return a.postResponse(ctx, post)
	})
}

func (a *API) UpdatePost(ctx context.Context, id string, input dto.UpdatePostInput) dto.Result[dto.PostResponse] {
	return run(ctx, a, "update_post", func(session models.Session) (dto.PostResponse, error) {
		post, err := a.posts.Update(ctx, id, input, session)
		if err != nil {
			return dto.PostResponse{}, err
		}
		return a.postResponse(ctx, post)
	})
}

func (a *API) DeletePost(ctx context.Context, id string) dto.Result[dto.DeleteResponse] {
	return run(ctx, a, "delete_post", func(session models.Session) (dto.DeleteResponse, error) {
		if err := a.posts.SoftDelete(ctx, id, session); err != nil {
			return dto.DeleteResponse{}, err
		}
		return dto.DeleteResponse{Deleted: true}, nil
	})
}

func (a *API) PromotePost(ctx context.Context, id string, promotionUntil string) dto.Result[dto.PostResponse] {
	return run(ctx, a, "promote_post", func(session models.Session) (dto.PostResponse, error) {
		post, err := a.posts.Promote(ctx, id, promotionUntil, session)
		if err != nil {
			return dto.PostResponse{}, err
		}
		return a.postResponse(ctx, post)
	})
}

func (a *API) StartChat(ctx context.Context, input dto.StartChatInput) dto.Result[*models.ChatThread] {
	return run(ctx, a, "start_chat", func(session models.Session) (*models.ChatThread, error) {
		return a.chats.StartThread(ctx, input, session)
	})
}

func (a *API) ListMyChats(ctx context.Context) dto.Result[[]*models.ChatThread] {
	return run(ctx, a, "list_chats", func(session models.Session) ([]*models.ChatThread, error) {
		return a.chats.ListThreads(ctx, session)
	})
}

// GetChatThread fails with NotFound unless the session takes part in the thread.
func (a *API) GetChatThread(ctx context.Context, id string) dto.Result[*models.ChatThread] {
	return run(ctx, a, "get_chat", func(session models.Session) (*models.ChatThread, error) {
		thread, err := a.chats.GetThreadByID(ctx, id, session)
		if err != nil {
			return nil, err
		}
		if thread == nil {
			return nil, apperrors.NewResourceNotFoundError("Chat thread not found.")
		}
		return thread, nil
	})
}

func (a *API) ListMessages(ctx context.Context, threadID string) dto.Result[[]*models.ChatMessage] {
	return run(ctx, a, "list_messages", func(session models.Session) ([]*models.ChatMessage, error) {
		return a.chats.ListMessages(ctx, threadID, session)
	})
}

// SendMessage stores the message and then hands a copy to the notifier.
func (a *API) SendMessage(ctx context.Context, threadID string, input dto.SendMessageInput) dto.Result[*models.ChatMessage] {
	res := run(ctx, a, "send_message", func(session models.Session) (*models.ChatMessage, error) {
		return a.chats.SendMessage(ctx, threadID, input, session)
	})
	if res.OK && a.notifier != nil {
		a.notifier.PublishMessage(res.Data.Clone())
	}
	return res
}

func (a *API) CreateReport(ctx context.Context, input dto.CreateReportInput) dto.Result[*models.Report] {
	return run(ctx, a, "create_report", func(session models.Session) (*models.Report, error) {
		return a.reports.Create(ctx, input, session)
	})
}

func (a *API) ListReports(ctx context.Context, query dto.ReportListQuery) dto.Result[dto.ListResult[*models.Report]] {
	return run(ctx, a, "list_reports", func(session models.Session) (dto.ListResult[*models.Report], error) {
		return a.reports.ListForAdmin(ctx, query, session)
	})
}

func (a *API) ResolveReport(ctx context.Context, id string, input dto.ResolveReportInput) dto.Result[*models.Report] {
	return run(ctx, a, "resolve_report", func(session models.Session) (*models.Report, error) {
		return a.reports.Resolve(ctx, id, input, session)
	})
}

func (a *API) postResponse(ctx context.Context, post *models.Post) (dto.PostResponse, error) {
	campus, err := a.users.GetCampus(ctx, post.CampusID)
	if err != nil {
		return dto.PostResponse{}, fmt.Errorf("lookup campus %s: %w", post.CampusID, err)
	}
	name := ""
	if campus != nil {
		name = campus.NameKo
	}
	return dto.NewPostResponse(post, name), nil
}

func (a *API) campusNames(ctx context.Context) (map[string]string, error) {
	campuses, err := a.users.ListCampuses(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list campuses: %w", err)
	}
	names := make(map[string]string, len(campuses))
	for _, c := range campuses {
		names[c.ID] = c.NameKo
	}
	return names, nil
}
