package models

// User represents a seeded account. Users are read-only at runtime.
type User struct {
	BaseEntity  `yaml:",inline"`
	CampusID    string       `json:"campus_id" yaml:"campus_id"`
	Role        UserRole     `json:"role" yaml:"role"`
	StudentType *StudentType `json:"student_type" yaml:"student_type,omitempty"`
	Nickname    string       `json:"nickname" yaml:"nickname"`
	Email       string       `json:"email" yaml:"email"`
	Department  *string      `json:"department" yaml:"department,omitempty"`
	Bio         *string      `json:"bio" yaml:"bio,omitempty"`
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	c := *u
	c.DeletedAt = cloneTime(u.DeletedAt)
	if u.StudentType != nil {
		st := *u.StudentType
		c.StudentType = &st
	}
	c.Department = cloneString(u.Department)
	c.Bio = cloneString(u.Bio)
	return &c
}
