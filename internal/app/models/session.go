package models

// Session is the identity a request acts under.
type Session struct {
	UserID      string       `json:"user_id"`
	Role        UserRole     `json:"role"`
	StudentType *StudentType `json:"student_type"`
	CampusID    string       `json:"campus_id"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SessionForUser derives the session a user logs in as.
func SessionForUser(u *User) Session {
	s := Session{UserID: u.ID, Role: u.Role, CampusID: u.CampusID}
	if u.Role == RoleStudent && u.StudentType != nil {
		st := *u.StudentType
		s.StudentType = &st
	}
	return s
}
