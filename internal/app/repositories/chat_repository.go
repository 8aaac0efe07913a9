package repositories

import (
	"context"
	"sort"
	"strings"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type chatRepository struct {
	store  *Store
	logger zerolog.Logger
}

// NewChatRepository creates the in-memory ChatRepository.
func NewChatRepository(store *Store, logger zerolog.Logger) ChatRepository {
	return &chatRepository{
		store:  store,
		logger: logger.With().Str("repository", "chats").Logger(),
	}
}

func (r *chatRepository) ListThreads(ctx context.Context, session models.Session) ([]*models.ChatThread, error) {
	threads := []*models.ChatThread{}
	err := r.store.View(func(tx *Tx) error {
		for _, t := range tx.Threads() {
			if t.IsDeleted() || t.CampusID != session.CampusID || !t.HasParticipant(session.UserID) {
				continue
			}
			threads = append(threads, t.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].ActivityAt().After(threads[j].ActivityAt())
	})
	return threads, nil
}

func (r *chatRepository) GetThreadByID(ctx context.Context, id string, session models.Session) (*models.ChatThread, error) {
	var out *models.ChatThread
	err := r.store.View(func(tx *Tx) error {
		if t := visibleThread(tx, id, session); t != nil {
			out = t.Clone()
		}
		return nil
	})
	return out, err
}

func (r *chatRepository) StartThread(ctx context.Context, input dto.StartChatInput, session models.Session) (*models.ChatThread, error) {
	var (
		out     *models.ChatThread
		created bool
	)
	err := r.store.Update(func(tx *Tx) error {
		post := tx.Post(input.PostID)
		if post == nil || post.IsDeleted() {
			return apperrors.NewResourceNotFoundError("Post not found.")
		}
		if !auth.CanReadPost(session, post) {
			return apperrors.NewForbiddenError("Cannot start chat for inaccessible post.")
		}
		// Campus is a hard boundary for chat, admins included.
		if post.CampusID != session.CampusID {
			return apperrors.NewForbiddenError("Cross-campus chat is blocked.")
		}
		if post.AuthorID == session.UserID {
			return apperrors.NewBadRequestError("Cannot chat on your own post.")
		}

		for _, t := range tx.Threads() {
			if !t.IsDeleted() && t.PostID == post.ID && t.SamePair(post.AuthorID, session.UserID) {
				out = t.Clone()
				return nil
			}
		}

		now := tx.Now()
		thread := &models.ChatThread{
			BaseEntity: models.BaseEntity{
				ID:        tx.NewID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CampusID:       post.CampusID,
			PostID:         post.ID,
			ParticipantIDs: []string{post.AuthorID, session.UserID},
			Status:         models.ThreadOpen,
		}
		tx.InsertThread(thread)
		out = thread.Clone()
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		r.logger.Info().Str("thread_id", out.ID).Str("post_id", out.PostID).Msg("chat thread started")
	}
	return out, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, threadID string, session models.Session) ([]*models.ChatMessage, error) {
	messages := []*models.ChatMessage{}
	err := r.store.View(func(tx *Tx) error {
		if visibleThread(tx, threadID, session) == nil {
			return apperrors.NewResourceNotFoundError("Chat thread not found.")
		}
		for _, m := range tx.Messages() {
			if m.IsDeleted() || m.ThreadID != threadID {
				continue
			}
			messages = append(messages, m.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *chatRepository) SendMessage(ctx context.Context, threadID string, input dto.SendMessageInput, session models.Session) (*models.ChatMessage, error) {
	var out *models.ChatMessage
	err := r.store.Update(func(tx *Tx) error {
		thread := visibleThread(tx, threadID, session)
		if thread == nil {
			return apperrors.NewResourceNotFoundError("Chat thread not found.")
		}
		if thread.Status != models.ThreadOpen {
			return apperrors.NewBadRequestError("Closed chat thread.")
		}
		body := strings.TrimSpace(input.Body)
		if body == "" {
			return apperrors.NewBadRequestError("Message cannot be empty.")
		}

		now := tx.Now()
		message := &models.ChatMessage{
			BaseEntity: models.BaseEntity{
				ID:        tx.NewID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CampusID: thread.CampusID,
			ThreadID: thread.ID,
			SenderID: session.UserID,
			Body:     body,
		}
		tx.AppendMessage(message)

		// Thread ordering follows the latest message.
		sentAt := now
		thread.LastMessageAt = &sentAt
		thread.Touch(now)

		out = message.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// visibleThread resolves a thread the session participates in within its own campus.
func visibleThread(tx *Tx, id string, session models.Session) *models.ChatThread {
	t := tx.Thread(id)
	if t == nil || t.IsDeleted() || t.CampusID != session.CampusID || !t.HasParticipant(session.UserID) {
		return nil
	}
	return t
}
