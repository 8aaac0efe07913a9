package models

import "time"

// Report is an abuse report against a post. Review fields stay nil until resolved.
type Report struct {
	BaseEntity `yaml:",inline"`
	CampusID   string           `json:"campus_id" yaml:"campus_id"`
	ReporterID string           `json:"reporter_id" yaml:"reporter_id"`
	TargetType ReportTargetType `json:"target_type" yaml:"target_type"`
	TargetID   string           `json:"target_id" yaml:"target_id"`
	Reason     ReportReason     `json:"reason" yaml:"reason"`
	Details    string           `json:"details" yaml:"details"`
	Status     ReportStatus     `json:"status" yaml:"status"`
	ReviewedBy *string          `json:"reviewed_by" yaml:"reviewed_by,omitempty"`
	ReviewedAt *time.Time       `json:"reviewed_at" yaml:"reviewed_at,omitempty"`
	ActionNote *string          `json:"action_note" yaml:"action_note,omitempty"`
}

func (r *Report) Clone() *Report {
	c := *r
	c.DeletedAt = cloneTime(r.DeletedAt)
	c.ReviewedAt = cloneTime(r.ReviewedAt)
	c.ReviewedBy = cloneString(r.ReviewedBy)
	c.ActionNote = cloneString(r.ActionNote)
	return &c
}
