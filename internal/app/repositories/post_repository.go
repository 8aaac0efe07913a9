package repositories

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/campulist/campulist/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

const (
	minTitleLength = 2
	minBodyLength  = 5
)

type postRepository struct {
	store  *Store
	logger zerolog.Logger
}

// NewPostRepository creates the in-memory PostRepository.
func NewPostRepository(store *Store, logger zerolog.Logger) PostRepository {
	return &postRepository{
		store:  store,
		logger: logger.With().Str("repository", "posts").Logger(),
	}
}

func (r *postRepository) List(ctx context.Context, query dto.PostListQuery, session models.Session) (dto.ListResult[*models.Post], error) {
	isAdmin := auth.IsAdmin(session)
	campusID := session.CampusID
	if isAdmin && query.CampusID != nil && *query.CampusID != "" {
		campusID = *query.CampusID
	}
	includeHidden := isAdmin && query.IncludeHidden
	keyword := strings.ToLower(strings.TrimSpace(query.Search))

	var rows []*models.Post
	err := r.store.View(func(tx *Tx) error {
		now := tx.Now()
		for _, p := range tx.Posts() {
			if p.IsDeleted() || p.CampusID != campusID {
				continue
			}
			if isAdmin {
				if p.Status == models.PostHidden && !includeHidden {
					continue
				}
			} else if !auth.CanReadPost(session, p) {
				continue
			}
			if query.Category != nil && p.Category != *query.Category {
				continue
			}
			if query.Status != nil && p.Status != *query.Status {
				continue
			}
			if query.PromotedOnly && !p.PromotedAt(now) {
				continue
			}
			if keyword != "" && !matchesKeyword(p, keyword) {
				continue
			}
			rows = append(rows, p.Clone())
		}
		return nil
	})
	if err != nil {
		return dto.ListResult[*models.Post]{}, err
	}

	sortPosts(rows, query.Sort)
	return dto.NewListResult(helpers.Paginate(rows, query.Limit, query.Offset)), nil
}

func (r *postRepository) GetByID(ctx context.Context, id string, session models.Session) (*models.Post, error) {
	var out *models.Post
	err := r.store.View(func(tx *Tx) error {
		p := tx.Post(id)
		if p == nil || p.IsDeleted() || !auth.CanReadPost(session, p) {
			return nil
		}
		out = p.Clone()
		return nil
	})
	return out, err
}

func (r *postRepository) Create(ctx context.Context, input dto.CreatePostInput, session models.Session) (*models.Post, error) {
	if err := auth.ValidateCategory(session, input.Category, "Category is not allowed for this role."); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}
	if err := validatePrice(input.PriceKRW); err != nil {
		return nil, err
	}

	var out *models.Post
	err := r.store.Update(func(tx *Tx) error {
		now := tx.Now()

		var promotionUntil *time.Time
		if input.IsPromoted {
			if input.PromotionUntil == nil || strings.TrimSpace(*input.PromotionUntil) == "" {
				return apperrors.NewBadRequestError("promotion_until is required when is_promoted is true.")
			}
			until, err := helpers.ParseFutureInstant(*input.PromotionUntil, now)
			if err != nil {
				return apperrors.NewBadRequestError("promotion_until must be a future datetime.")
			}
			promotionUntil = &until
		}

		campusID := session.CampusID
		if auth.IsAdmin(session) && input.CampusID != nil && *input.CampusID != "" {
			campus := tx.Campus(*input.CampusID)
			if campus == nil || campus.IsDeleted() {
				return apperrors.NewBadRequestError("Unknown campus.")
			}
			campusID = campus.ID
		}

		role := session.Role
		post := &models.Post{
			BaseEntity: models.BaseEntity{
				ID:        tx.NewID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CampusID:              campusID,
			Category:              input.Category,
			AuthorID:              session.UserID,
			AuthorRoleSnapshot:    &role,
			ShowAffiliationPrefix: input.ShowAffiliationPrefix,
			Title:                 title,
			Body:                  body,
			PriceKRW:              copyInt64(input.PriceKRW),
			Tags:                  normalizeTags(input.Tags),
			LocationHint:          normalizeLocation(input.LocationHint),
			Status:                models.PostActive,
			IsPromoted:            input.IsPromoted,
			PromotionUntil:        promotionUntil,
		}
		if session.Role == models.RoleStudent && session.StudentType != nil {
			st := *session.StudentType
			post.AuthorStudentTypeSnapshot = &st
		}

		tx.InsertPost(post)
		out = post.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info().Str("post_id", out.ID).Str("campus_id", out.CampusID).Str("category", string(out.Category)).Msg("post created")
	return out, nil
}

func (r *postRepository) Update(ctx context.Context, id string, input dto.UpdatePostInput, session models.Session) (*models.Post, error) {
	var out *models.Post
	err := r.store.Update(func(tx *Tx) error {
		post, err := mutablePost(tx, id)
		if err != nil {
			return err
		}
		if err := auth.ValidatePostMutation(session, post, "You cannot edit this post."); err != nil {
			return err
		}
		if post.Status == models.PostHidden && !auth.IsAdmin(session) {
			return apperrors.NewForbiddenError("Hidden posts can only be changed by an admin.")
		}

		// Everything is validated before the stored post is touched.
		next := post.Clone()

		if input.Category != nil && *input.Category != post.Category {
			if err := auth.ValidateCategory(session, *input.Category, "Role cannot move this post to selected category."); err != nil {
				return err
			}
			next.Category = *input.Category
		}
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if err := validateTitle(title); err != nil {
				return err
			}
			next.Title = title
		}
		if input.Body != nil {
			body := strings.TrimSpace(*input.Body)
			if err := validateBody(body); err != nil {
				return err
			}
			next.Body = body
		}
		if input.PriceKRW.Set {
			if err := validatePrice(input.PriceKRW.Value); err != nil {
				return err
			}
			next.PriceKRW = copyInt64(input.PriceKRW.Value)
		}
		if input.Tags != nil {
			next.Tags = normalizeTags(input.Tags)
		}
		if input.LocationHint.Set {
			next.LocationHint = normalizeLocation(input.LocationHint.Value)
		}
		if input.ShowAffiliationPrefix != nil {
			next.ShowAffiliationPrefix = *input.ShowAffiliationPrefix
		}
		if input.Status != nil {
			to := *input.Status
			if !to.IsValid() {
				return apperrors.NewBadRequestError("Status is invalid.")
			}
			if !auth.CanTransitionStatus(session, post.Status, to) {
				return apperrors.NewConflictError(fmt.Sprintf("Cannot change status from %s to %s.", post.Status, to))
			}
			next.Status = to
		}

		next.UpdatedAt = tx.Now()
		*post = *next
		out = post.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id string, session models.Session) error {
	err := r.store.Update(func(tx *Tx) error {
		post, err := mutablePost(tx, id)
		if err != nil {
			return err
		}
		if err := auth.ValidatePostMutation(session, post, "You cannot delete this post."); err != nil {
			return err
		}
		post.SoftDelete(tx.Now())
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info().Str("post_id", id).Str("user_id", session.UserID).Msg("post deleted")
	return nil
}

func (r *postRepository) Promote(ctx context.Context, id string, promotionUntil string, session models.Session) (*models.Post, error) {
	var out *models.Post
	err := r.store.Update(func(tx *Tx) error {
		post, err := mutablePost(tx, id)
		if err != nil {
			return err
		}
		if err := auth.ValidatePostMutation(session, post, "You cannot promote this post."); err != nil {
			return err
		}
		if post.Status == models.PostHidden {
			return apperrors.NewBadRequestError("Hidden posts cannot be promoted.")
		}

		now := tx.Now()
		until, err := helpers.ParseFutureInstant(promotionUntil, now)
		if err != nil {
			return apperrors.NewBadRequestError("promotion_until must be a future datetime.")
		}

		post.IsPromoted = true
		post.PromotionUntil = &until
		post.Touch(now)
		out = post.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id string, session models.Session) error {
	return r.store.Update(func(tx *Tx) error {
		post := tx.Post(id)
		if post == nil || post.IsDeleted() || !auth.CanReadPost(session, post) {
			return nil
		}
		post.ViewCount++
		post.Touch(tx.Now())
		return nil
	})
}

// mutablePost returns the stored post or NotFound when it is missing or deleted.
func mutablePost(tx *Tx, id string) (*models.Post, error) {
	post := tx.Post(id)
	if post == nil || post.IsDeleted() {
		return nil, apperrors.NewResourceNotFoundError("Post not found.")
	}
	return post, nil
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) < minTitleLength {
		return apperrors.NewBadRequestError("Title must be at least 2 characters.")
	}
	return nil
}

func validateBody(body string) error {
	if utf8.RuneCountInString(body) < minBodyLength {
		return apperrors.NewBadRequestError("Body must be at least 5 characters.")
	}
	return nil
}

func validatePrice(price *int64) error {
	if price != nil && *price < 0 {
		return apperrors.NewBadRequestError("Price must be zero or positive.")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func normalizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*location)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func matchesKeyword(p *models.Post, keyword string) bool {
	parts := make([]string, 0, len(p.Tags)+2)
	parts = append(parts, p.Title, p.Body)
	parts = append(parts, p.Tags...)
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), keyword)
}

// sortedPrice treats a missing price as the most expensive.
func sortedPrice(p *models.Post) int64 {
	if p.PriceKRW == nil {
		return math.MaxInt64
	}
	return *p.PriceKRW
}

func sortPosts(rows []*models.Post, option models.PostSortOption) {
	var less func(a, b *models.Post) bool
	switch option {
	case models.SortOldest:
		less = func(a, b *models.Post) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case models.SortPriceAsc:
		less = func(a, b *models.Post) bool { return sortedPrice(a) < sortedPrice(b) }
	case models.SortPriceDesc:
		less = func(a, b *models.Post) bool { return sortedPrice(a) > sortedPrice(b) }
	case models.SortPopular:
		less = func(a, b *models.Post) bool { return a.ViewCount > b.ViewCount }
	default:
		less = func(a, b *models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
