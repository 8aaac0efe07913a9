package dto

import (
	"github.com/campulist/campulist/internal/app/models"
)

// PostListQuery filters the post board. Nil Limit/Offset take the listing defaults.
type PostListQuery struct {
	CampusID      *string               `json:"campus_id" form:"campus_id" binding:"omitempty,uuid"`
	Category      *models.PostCategory  `json:"category" form:"category" binding:"omitempty,oneof=market housing jobs store"`
	Status        *models.PostStatus    `json:"status" form:"status" binding:"omitempty,oneof=draft active reserved closed hidden"`
	Search        string                `json:"search" form:"search"`
	Sort          models.PostSortOption `json:"sort" form:"sort" binding:"omitempty,oneof=newest oldest price_asc price_desc popular"`
	PromotedOnly  bool                  `json:"promoted_only" form:"promoted_only"`
	IncludeHidden bool                  `json:"include_hidden" form:"include_hidden"`
	Limit         *int                  `json:"limit" form:"limit"`
	Offset        *int                  `json:"offset" form:"offset"`
}

// CreatePostInput is the payload for a new listing.
type CreatePostInput struct {
	// CampusID is honored for admins only.
	CampusID              *string             `json:"campus_id" binding:"omitempty,uuid"`
	Category              models.PostCategory `json:"category" binding:"required,oneof=market housing jobs store"`
	Title                 string              `json:"title" binding:"required"`
	Body                  string              `json:"body" binding:"required"`
	ShowAffiliationPrefix bool                `json:"show_affiliation_prefix"`
	PriceKRW              *int64              `json:"price_krw" binding:"omitempty,min=0"`
	Tags                  []string            `json:"tags"`
	LocationHint          *string             `json:"location_hint"`
	IsPromoted            bool                `json:"is_promoted"`
	PromotionUntil        *string             `json:"promotion_until"`
}

// UpdatePostInput changes only the fields that are present. PriceKRW and
// LocationHint may be cleared with an explicit null.
type UpdatePostInput struct {
	Category              *models.PostCategory `json:"category" binding:"omitempty,oneof=market housing jobs store"`
	Title                 *string              `json:"title"`
	Body                  *string              `json:"body"`
	ShowAffiliationPrefix *bool                `json:"show_affiliation_prefix"`
	PriceKRW              Nullable[int64]      `json:"price_krw"`
	Tags                  []string             `json:"tags"`
	LocationHint          Nullable[string]     `json:"location_hint"`
	Status                *models.PostStatus   `json:"status" binding:"omitempty,oneof=draft active reserved closed hidden"`
}

// PromotePostInput carries the promotion end as an RFC 3339 string.
type PromotePostInput struct {
	PromotionUntil string `json:"promotion_until" binding:"required"`
}

// PostResponse is a post plus its rendered display title.
type PostResponse struct {
	*models.Post
	DisplayTitle string `json:"display_title"`
}

// NewPostResponse renders the display title using campusName for the prefix.
func NewPostResponse(p *models.Post, campusName string) PostResponse {
	return PostResponse{Post: p, DisplayTitle: models.DisplayTitle(p, campusName)}
}

// DeleteResponse acknowledges a soft delete.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
