package models

import (
	"fmt"
	"strings"
)

// UnknownCampusLabel is shown when a prefix references a campus that no longer exists.
const UnknownCampusLabel = "알 수 없는 캠퍼스"

var roleLabels = map[UserRole]string{
	RoleStudent:   "학생",
	RoleProfessor: "교수",
	RoleStaff:     "교직원",
	RoleMerchant:  "인근상인",
	RoleAdmin:     "관리자",
}

var studentTypeLabels = map[StudentType]string{
	StudentUndergrad: "학부생",
	StudentGraduate:  "대학원생",
}

var categoryLabels = map[PostCategory]string{
	CategoryMarket:  "중고거래",
	CategoryHousing: "주거",
	CategoryJobs:    "일자리",
	CategoryStore:   "상점홍보",
}

var postStatusLabels = map[PostStatus]string{
	PostDraft:    "임시저장",
	PostActive:   "게시중",
	PostReserved: "예약중",
	PostClosed:   "마감",
	PostHidden:   "숨김",
}

var reportReasonLabels = map[ReportReason]string{
	ReasonSpam:           "스팸/도배",
	ReasonFraud:          "사기 의심",
	ReasonAbuse:          "욕설/혐오",
	ReasonProhibitedItem: "금지품목",
	ReasonOther:          "기타",
}

var reportStatusLabels = map[ReportStatus]string{
	ReportPending:  "대기",
	ReportReviewed: "검토완료",
	ReportActioned: "조치완료",
	ReportRejected: "반려",
}

func (r UserRole) Label() string { return roleLabels[r] }
func (t StudentType) Label() string { return studentTypeLabels[t] }
func (c PostCategory) Label() string { return categoryLabels[c] }
func (s PostStatus) Label() string { return postStatusLabels[s] }
func (r ReportReason) Label() string { return reportReasonLabels[r] }
func (s ReportStatus) Label() string { return reportStatusLabels[s] }
func (s ChatThreadStatus) Label() string {
	if s == ThreadClosed {
		return "종료"
	}
	return "진행중"
}

// RoleDisplayLabel prefers the student type label for students that have one.
func RoleDisplayLabel(role UserRole, studentType *StudentType) string {
	if role == RoleStudent && studentType != nil {
		return studentType.Label()
	}
	return role.Label()
}

// DisplayTitle renders the title shown in listings. When the author opted in
// and a role snapshot exists it is prefixed with "[campus][role]".
func DisplayTitle(p *Post, campusName string) string {
	title := strings.TrimSpace(p.Title)
	if !p.ShowAffiliationPrefix || p.AuthorRoleSnapshot == nil || p.CampusID == "" {
		return title
	}
	if campusName == "" {
		campusName = UnknownCampusLabel
	}
	prefix := fmt.Sprintf("[%s][%s]", campusName, RoleDisplayLabel(*p.AuthorRoleSnapshot, p.AuthorStudentTypeSnapshot))
	return prefix + " " + title
}
