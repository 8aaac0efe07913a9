package models

import "time"

// Post is a classified listing.
//
// IsPromoted is true only while PromotionUntil was in the future at the moment
// it was set. Lapsed promotions are never swept, so the flag may go stale.
type Post struct {
	BaseEntity                `yaml:",inline"`
	CampusID                  string       `json:"campus_id" yaml:"campus_id"`
	Category                  PostCategory `json:"category" yaml:"category"`
	AuthorID                  string       `json:"author_id" yaml:"author_id"`
	AuthorRoleSnapshot        *UserRole    `json:"author_role_snapshot" yaml:"author_role_snapshot,omitempty"`
	AuthorStudentTypeSnapshot *StudentType `json:"author_student_type_snapshot" yaml:"author_student_type_snapshot,omitempty"`
	ShowAffiliationPrefix     bool         `json:"show_affiliation_prefix" yaml:"show_affiliation_prefix"`
	Title                     string       `json:"title" yaml:"title"`
	Body                      string       `json:"body" yaml:"body"`
	PriceKRW                  *int64       `json:"price_krw" yaml:"price_krw,omitempty"`
	Tags                      []string     `json:"tags" yaml:"tags"`
	LocationHint              *string      `json:"location_hint" yaml:"location_hint,omitempty"`
	Status                    PostStatus   `json:"status" yaml:"status"`
	IsPromoted                bool         `json:"is_promoted" yaml:"is_promoted"`
	PromotionUntil            *time.Time   `json:"promotion_until" yaml:"promotion_until,omitempty"`
	ViewCount                 int64        `json:"view_count" yaml:"view_count"`
}

// PromotedAt reports whether the promotion is still running at now.
func (p *Post) PromotedAt(now time.Time) bool {
	return p.IsPromoted && p.PromotionUntil != nil && p.PromotionUntil.After(now)
}

// Clone returns a deep copy so callers never alias stored state.
func (p *Post) Clone() *Post {
	c := *p
	c.DeletedAt = cloneTime(p.DeletedAt)
	c.PromotionUntil = cloneTime(p.PromotionUntil)
	c.LocationHint = cloneString(p.LocationHint)
	if p.PriceKRW != nil {
		v := *p.PriceKRW
		c.PriceKRW = &v
	}
	if p.AuthorRoleSnapshot != nil {
		v := *p.AuthorRoleSnapshot
		c.AuthorRoleSnapshot = &v
	}
	if p.AuthorStudentTypeSnapshot != nil {
		v := *p.AuthorStudentTypeSnapshot
		c.AuthorStudentTypeSnapshot = &v
	}
	c.Tags = append([]string(nil), p.Tags...)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}
