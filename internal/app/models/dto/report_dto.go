package dto

import "github.com/campulist/campulist/internal/app/models"

// CreateReportInput files an abuse report.
type CreateReportInput struct {
	TargetType models.ReportTargetType `json:"target_type" binding:"required"`
	TargetID   string                  `json:"target_id" binding:"required,uuid"`
	Reason     models.ReportReason     `json:"reason" binding:"required"`
	Details    string                  `json:"details"`
}

// ReportListQuery filters the moderation queue.
type ReportListQuery struct {
	CampusID *string              `json:"campus_id" form:"campus_id" binding:"omitempty,uuid"`
	Status   *models.ReportStatus `json:"status" form:"status" binding:"omitempty,oneof=pending reviewed actioned rejected"`
	Limit    *int                 `json:"limit" form:"limit"`
	Offset   *int                 `json:"offset" form:"offset"`
}

// ResolveReportInput closes a report. Pending is not an accepted status.
type ResolveReportInput struct {
	Status     models.ReportStatus `json:"status" binding:"required,oneof=reviewed actioned rejected"`
	ActionNote string              `json:"action_note"`
	HideTarget bool                `json:"hide_target"`
}
