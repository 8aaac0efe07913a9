package auth

import (
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/pkg/apperrors"
)

var categoryAccessByRole = map[models.UserRole][]models.PostCategory{
	models.RoleStudent:   {models.CategoryMarket, models.CategoryHousing, models.CategoryJobs},
	models.RoleProfessor: {models.CategoryMarket, models.CategoryHousing, models.CategoryJobs},
	models.RoleStaff:     {models.CategoryMarket, models.CategoryHousing, models.CategoryJobs},
	models.RoleMerchant:  {models.CategoryStore, models.CategoryJobs},
	models.RoleAdmin:     {models.CategoryMarket, models.CategoryHousing, models.CategoryJobs, models.CategoryStore},
}

// statusTransitions is the self-service lifecycle. Hidden has no exits.
var statusTransitions = map[models.PostStatus][]models.PostStatus{
	models.PostDraft:    {models.PostActive},
	models.PostActive:   {models.PostReserved, models.PostClosed},
	models.PostReserved: {models.PostActive, models.PostClosed},
	models.PostClosed:   {models.PostActive},
}

// AllowedCategoriesForRole returns a fresh copy of the categories role may post in.
func AllowedCategoriesForRole(role models.UserRole) []models.PostCategory {
	return append([]models.PostCategory{}, categoryAccessByRole[role]...)
}

// IsAdmin reports whether the session may bypass campus and ownership checks.
func IsAdmin(s models.Session) bool {
	return s.Role == models.RoleAdmin
}

// CanCreateInCategory reports whether the session's role may post in category.
func CanCreateInCategory(s models.Session, category models.PostCategory) bool {
	for _, c := range categoryAccessByRole[s.Role] {
		if c == category {
			return true
		}
	}
	return false
}

// CanReadPost is the single visibility predicate for posts. Drafts are
// visible to their author only.
func CanReadPost(s models.Session, p *models.Post) bool {
	if IsAdmin(s) {
		return true
	}
	if s.CampusID != p.CampusID || p.IsDeleted() || p.Status == models.PostHidden {
		return false
	}
	if p.Status == models.PostDraft {
		return s.UserID == p.AuthorID
	}
	return true
}

// CanMutatePost allows admins and the author acting within the post's campus.
func CanMutatePost(s models.Session, p *models.Post) bool {
	if IsAdmin(s) {
		return true
	}
	return s.UserID == p.AuthorID && s.CampusID == p.CampusID
}

// CanModerateReports gates the moderation queue.
func CanModerateReports(s models.Session) bool {
	return IsAdmin(s)
}

// CanTransitionStatus applies the lifecycle table. Staying in place is always
// allowed and admins may move anywhere.
func CanTransitionStatus(s models.Session, from, to models.PostStatus) bool {
	if from == to || IsAdmin(s) {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidatePostMutation returns a forbidden error when the session cannot change p.
func ValidatePostMutation(s models.Session, p *models.Post, message string) error {
	if !CanMutatePost(s, p) {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// ValidateCategory returns a forbidden error when the role may not use category.
func ValidateCategory(s models.Session, category models.PostCategory, message string) error {
	if !CanCreateInCategory(s, category) {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// ValidateModerator returns a forbidden error for non-admin sessions.
func ValidateModerator(s models.Session) error {
	if !CanModerateReports(s) {
		return apperrors.NewForbiddenError("Only admins can moderate reports.")
	}
	return nil
}
