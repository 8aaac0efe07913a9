package repositories

import (
	"context"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// PostRepository stores listings. Every method authorizes against the
// session it is given; returned posts are copies.
type PostRepository interface {
	List(ctx context.Context, query dto.PostListQuery, session models.Session) (dto.ListResult[*models.Post], error)
	// GetByID returns nil without an error when the post is missing, deleted
	// or not readable by session.
	GetByID(ctx context.Context, id string, session models.Session) (*models.Post, error)
	Create(ctx context.Context, input dto.CreatePostInput, session models.Session) (*models.Post, error)
	Update(ctx context.Context, id string, input dto.UpdatePostInput, session models.Session) (*models.Post, error)
	SoftDelete(ctx context.Context, id string, session models.Session) error
	Promote(ctx context.Context, id string, promotionUntil string, session models.Session) (*models.Post, error)
	// IncrementViewCount is best effort and never fails for missing or unreadable posts.
	IncrementViewCount(ctx context.Context, id string, session models.Session) error
}

// ChatRepository stores threads and their messages.
type ChatRepository interface {
	ListThreads(ctx context.Context, session models.Session) ([]*models.ChatThread, error)
	GetThreadByID(ctx context.Context, id string, session models.Session) (*models.ChatThread, error)
	StartThread(ctx context.Context, input dto.StartChatInput, session models.Session) (*models.ChatThread, error)
	ListMessages(ctx context.Context, threadID string, session models.Session) ([]*models.ChatMessage, error)
	SendMessage(ctx context.Context, threadID string, input dto.SendMessageInput, session models.Session) (*models.ChatMessage, error)
}

// ReportRepository stores abuse reports and their moderation outcome.
type ReportRepository interface {
	Create(ctx context.Context, input dto.CreateReportInput, session models.Session) (*models.Report, error)
	ListForAdmin(ctx context.Context, query dto.ReportListQuery, session models.Session) (dto.ListResult[*models.Report], error)
	Resolve(ctx context.Context, id string, input dto.ResolveReportInput, session models.Session) (*models.Report, error)
}

// UserFilter narrows FindFirst. Zero fields match anything.
type UserFilter struct {
	Role        models.UserRole
	CampusID    string
	StudentType *models.StudentType
}

// UserRepository reads seeded users and campuses.
type UserRepository interface {
	// FindByID returns nil when the user does not exist. Deleted users are returned.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindFirst returns the first non-deleted user matching filter, or nil.
	FindFirst(ctx context.Context, filter UserFilter) (*models.User, error)
	ListCampuses(ctx context.Context, activeOnly bool) ([]*models.Campus, error)
	GetCampus(ctx context.Context, id string) (*models.Campus, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Store            *Store
	PostRepository   PostRepository
	ChatRepository   ChatRepository
	ReportRepository ReportRepository
	UserRepository   UserRepository
}

// NewRepositories wires the in-memory implementations over store.
func NewRepositories(store *Store, logger zerolog.Logger) *Repositories {
	return &Repositories{
		Store:            store,
		PostRepository:   NewPostRepository(store, logger),
		ChatRepository:   NewChatRepository(store, logger),
		ReportRepository: NewReportRepository(store, logger),
		UserRepository:   NewUserRepository(store),
	}
}
