package models

import "time"

// BaseEntity carries the identity and audit fields shared by every record.
// A non-nil DeletedAt marks the record as soft-deleted.
type BaseEntity struct {
	ID        string     `json:"id" yaml:"id"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" yaml:"deleted_at,omitempty"`
}

// IsDeleted reports whether the record has been soft-deleted.
func (b BaseEntity) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Touch sets UpdatedAt.
func (b *BaseEntity) Touch(now time.Time) {
	b.UpdatedAt = now
}

// SoftDelete stamps DeletedAt and UpdatedAt with the same instant.
func (b *BaseEntity) SoftDelete(now time.Time) {
	t := now
	b.DeletedAt = &t
	b.UpdatedAt = now
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
