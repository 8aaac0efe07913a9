package models

// UserRole is the affiliation a user acts under.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleStaff     UserRole = "staff"
	RoleMerchant  UserRole = "merchant"
	RoleAdmin     UserRole = "admin"
)

// UserRoles lists every role in display order.
var UserRoles = []UserRole{RoleStudent, RoleProfessor, RoleStaff, RoleMerchant, RoleAdmin}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleStaff, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}

// StudentType is only meaningful when the role is student.
type StudentType string

const (
	StudentUndergrad StudentType = "undergrad"
	StudentGraduate  StudentType = "graduate"
)

func (t StudentType) IsValid() bool {
	return t == StudentUndergrad || t == StudentGraduate
}

// PostCategory groups listings on the board.
type PostCategory string

const (
	CategoryMarket  PostCategory = "market"
	CategoryHousing PostCategory = "housing"
	CategoryJobs    PostCategory = "jobs"
	CategoryStore   PostCategory = "store"
)

// PostCategories lists every category in display order.
var PostCategories = []PostCategory{CategoryMarket, CategoryHousing, CategoryJobs, CategoryStore}

func (c PostCategory) IsValid() bool {
	switch c {
	case CategoryMarket, CategoryHousing, CategoryJobs, CategoryStore:
		return true
	}
	return false
}

// PostStatus is the lifecycle state of a listing.
type PostStatus string

const (
	PostDraft    PostStatus = "draft"
	PostActive   PostStatus = "active"
	PostReserved PostStatus = "reserved"
	PostClosed   PostStatus = "closed"
	PostHidden   PostStatus = "hidden"
)

// PostStatuses lists every status in lifecycle order.
var PostStatuses = []PostStatus{PostDraft, PostActive, PostReserved, PostClosed, PostHidden}

func (s PostStatus) IsValid() bool {
	switch s {
	case PostDraft, PostActive, PostReserved, PostClosed, PostHidden:
		return true
	}
	return false
}

// PostSortOption selects the listing order.
type PostSortOption string

const (
	SortNewest    PostSortOption = "newest"
	SortOldest    PostSortOption = "oldest"
	SortPriceAsc  PostSortOption = "price_asc"
	SortPriceDesc PostSortOption = "price_desc"
	SortPopular   PostSortOption = "popular"
)

func (o PostSortOption) IsValid() bool {
	switch o {
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortPopular:
		return true
	}
	return false
}

// ChatThreadStatus is open until a thread is closed.
type ChatThreadStatus string

const (
	ThreadOpen   ChatThreadStatus = "open"
	ThreadClosed ChatThreadStatus = "closed"
)

// ReportTargetType names what a report points at. Only posts can be reported.
type ReportTargetType string

const (
	TargetPost ReportTargetType = "post"
)

// ReportReason classifies an abuse report.
type ReportReason string

const (
	ReasonSpam           ReportReason = "spam"
	ReasonFraud          ReportReason = "fraud"
	ReasonAbuse          ReportReason = "abuse"
	ReasonProhibitedItem ReportReason = "prohibited_item"
	ReasonOther          ReportReason = "other"
)

func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonFraud, ReasonAbuse, ReasonProhibitedItem, ReasonOther:
		return true
	}
	return false
}

// ReportStatus tracks moderation progress.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportActioned ReportStatus = "actioned"
	ReportRejected ReportStatus = "rejected"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportActioned, ReportRejected:
		return true
	}
	return false
}

// IsTerminal reports whether a moderator may resolve a report into s.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportReviewed || s == ReportActioned || s == ReportRejected
}
