package seed

import (
	"time"

	appModels "github.com/campulist/campulist/internal/app/models"
	appRepos "github.com/campulist/campulist/internal/app/repositories"
)

type campusSeed struct {
	id, slug, nameKo, nameEn string
}

var campusSeeds = []campusSeed{
	{CampusKAIST, "kaist-main", "카이스트 대전 본원", "KAIST Main Campus (Daejeon)"},
	{CampusCNU, "cnu", "충남대학교", "Chungnam National University"},
	{CampusHanbat, "hanbat", "국립한밭대학교", "Hanbat National University"},
	{CampusMokwon, "mokwon", "목원대학교", "Mokwon University"},
	{CampusPaichai, "paichai", "배재대학교", "Pai Chai University"},
	{CampusWoosong, "woosong", "우송대학교", "Woosong University"},
}

type userSeed struct {
	key         string
	role        appModels.UserRole
	studentType appModels.StudentType
	nickname    string
	department  string
}

// One user per role for each populated campus. The undergrad comes first so
// it backs the default session.
var userSeeds = []userSeed{
	{"undergrad", appModels.RoleStudent, appModels.StudentUndergrad, "새내기", "전산학부"},
	{"graduate", appModels.RoleStudent, appModels.StudentGraduate, "대학원생", "기계공학과"},
	{"professor", appModels.RoleProfessor, "", "김교수", "전산학부"},
	{"staff", appModels.RoleStaff, "", "학생지원팀", "학생처"},
	{"merchant", appModels.RoleMerchant, "", "정문 카페", ""},
	{"admin", appModels.RoleAdmin, "", "운영자", ""},
}

var populatedCampuses = []campusSeed{campusSeeds[0], campusSeeds[1]}

// UserID returns the stable id of the seeded user for a campus slug and a
// role key (undergrad, graduate, professor, staff, merchant, admin).
func UserID(campusSlug, key string) string {
	return StableID("user:" + campusSlug + ":" + key)
}

// PostID returns the stable id of a seeded post.
func PostID(key string) string {
	return StableID("post:" + key)
}

// Default builds the built-in dataset with timestamps relative to now.
func Default(now time.Time) appRepos.Dataset {
	now = now.UTC()
	ago := func(d time.Duration) appModels.BaseEntity {
		t := now.Add(-d)
		return appModels.BaseEntity{CreatedAt: t, UpdatedAt: t}
	}

	var ds appRepos.Dataset
	for _, c := range campusSeeds {
		base := ago(30 * 24 * time.Hour)
		base.ID = c.id
		ds.Campuses = append(ds.Campuses, appModels.Campus{
			BaseEntity: base,
			Slug:       c.slug,
			NameKo:     c.nameKo,
			NameEn:     c.nameEn,
			City:       "Daejeon",
			IsActive:   true,
		})
	}

	for _, c := range populatedCampuses {
		for _, u := range userSeeds {
			base := ago(14 * 24 * time.Hour)
			base.ID = UserID(c.slug, u.key)
			user := appModels.User{
				BaseEntity: base,
				CampusID:   c.id,
				Role:       u.role,
				Nickname:   u.nickname,
				Email:      u.key + "@" + c.slug + ".campulist.test",
			}
			if u.studentType != "" {
				st := u.studentType
				user.StudentType = &st
			}
			if u.department != "" {
				dept := u.department
				user.Department = &dept
			}
			ds.Users = append(ds.Users, user)
		}
	}

	undergrad := appModels.StudentUndergrad
	graduate := appModels.StudentGraduate
	post := func(key, campusSlug, campusID, authorKey string, role appModels.UserRole, st *appModels.StudentType, age time.Duration) appModels.Post {
		base := ago(age)
		base.ID = PostID(key)
		r := role
		return appModels.Post{
			BaseEntity:                base,
			CampusID:                  campusID,
			AuthorID:                  UserID(campusSlug, authorKey),
			AuthorRoleSnapshot:        &r,
			AuthorStudentTypeSnapshot: st,
			Status:                    appModels.PostActive,
			Tags:                      []string{},
		}
	}

	lamp := post("desk-lamp", "kaist-main", CampusKAIST, "undergrad", appModels.RoleStudent, &undergrad, 2*time.Hour)
	lamp.Category = appModels.CategoryMarket
	lamp.Title = "스탠드 조명 팝니다"
	lamp.Body = "기숙사에서 한 학기 사용했습니다. 밝기 3단 조절 가능해요."
	lamp.PriceKRW = int64Ptr(15000)
	lamp.Tags = []string{"조명", "기숙사"}
	lamp.LocationHint = strPtr("N14 사랑관 로비")
	lamp.ShowAffiliationPrefix = true
	lamp.ViewCount = 12

	room := post("sublet-room", "kaist-main", CampusKAIST, "graduate", appModels.RoleStudent, &graduate, 20*time.Hour)
	room.Category = appModels.CategoryHousing
	room.Title = "여름학기 원룸 단기 양도"
	room.Body = "7월부터 8월까지 두 달간 양도합니다. 관리비 포함 월 40만원."
	room.PriceKRW = int64Ptr(400000)
	room.Tags = []string{"원룸", "단기"}
	room.Status = appModels.PostReserved

	lab := post("lab-assistant", "kaist-main", CampusKAIST, "professor", appModels.RoleProfessor, nil, 26*time.Hour)
	lab.Category = appModels.CategoryJobs
	lab.Title = "연구실 학부 인턴 모집"
	lab.Body = "데이터 처리 업무를 도와줄 학부생을 찾습니다. 주 10시간."
	lab.ShowAffiliationPrefix = true
	lab.Tags = []string{"인턴", "연구"}
	lab.ViewCount = 40

	cafe := post("cafe-coupon", "kaist-main", CampusKAIST, "merchant", appModels.RoleMerchant, nil, 3*24*time.Hour)
	cafe.Category = appModels.CategoryStore
	cafe.Title = "시험기간 아메리카노 1+1"
	cafe.Body = "학생증 제시 시 시험기간 동안 아메리카노 1+1 행사를 진행합니다."
	cafe.PriceKRW = int64Ptr(3000)
	cafe.IsPromoted = true
	cafe.PromotionUntil = timePtr(now.Add(7 * 24 * time.Hour))
	cafe.ViewCount = 88

	draft := post("draft-bike", "kaist-main", CampusKAIST, "undergrad", appModels.RoleStudent, &undergrad, 30*time.Minute)
	draft.Category = appModels.CategoryMarket
	draft.Title = "자전거 판매 준비중"
	draft.Body = "사진 정리 후 올릴 예정입니다."
	draft.Status = appModels.PostDraft

	scam := post("hidden-ticket", "kaist-main", CampusKAIST, "graduate", appModels.RoleStudent, &graduate, 5*24*time.Hour)
	scam.Category = appModels.CategoryMarket
	scam.Title = "콘서트 티켓 선입금"
	scam.Body = "입금 먼저 해주시면 티켓 보내드립니다."
	scam.PriceKRW = int64Ptr(150000)
	scam.Status = appModels.PostHidden

	books := post("cnu-textbooks", "cnu", CampusCNU, "undergrad", appModels.RoleStudent, &undergrad, 6*time.Hour)
	books.Category = appModels.CategoryMarket
	books.Title = "경영학원론 교재 일괄"
	books.Body = "필기 거의 없습니다. 세 권 일괄로만 판매해요."
	books.PriceKRW = int64Ptr(20000)
	books.Tags = []string{"교재"}

	cnuJob := post("cnu-staff-job", "cnu", CampusCNU, "staff", appModels.RoleStaff, nil, 2*24*time.Hour)
	cnuJob.Category = appModels.CategoryJobs
	cnuJob.Title = "도서관 근로장학생 모집"
	cnuJob.Body = "평일 오후 근무 가능자 우대. 학생지원팀으로 문의 바랍니다."
	cnuJob.ShowAffiliationPrefix = true

	// Newest first, matching insertion order of repository creates.
	ds.Posts = []appModels.Post{draft, lamp, books, room, lab, cnuJob, cafe, scam}

	threadBase := ago(90 * time.Minute)
	threadBase.ID = StableID("thread:desk-lamp:graduate")
	msgAt := now.Add(-80 * time.Minute)
	threadBase.UpdatedAt = msgAt
	ds.ChatThreads = []appModels.ChatThread{{
		BaseEntity:     threadBase,
		CampusID:       CampusKAIST,
		PostID:         lamp.ID,
		ParticipantIDs: []string{lamp.AuthorID, UserID("kaist-main", "graduate")},
		Status:         appModels.ThreadOpen,
		LastMessageAt:  &msgAt,
	}}
	ds.ChatMessages = []appModels.ChatMessage{{
		BaseEntity: appModels.BaseEntity{ID: StableID("message:desk-lamp:1"), CreatedAt: msgAt, UpdatedAt: msgAt},
		CampusID:   CampusKAIST,
		ThreadID:   threadBase.ID,
		SenderID:   UserID("kaist-main", "graduate"),
		Body:       "아직 판매 중인가요?",
	}}

	reportBase := ago(4 * 24 * time.Hour)
	reportBase.ID = StableID("report:hidden-ticket")
	ds.Reports = []appModels.Report{{
		BaseEntity: reportBase,
		CampusID:   CampusKAIST,
		ReporterID: UserID("kaist-main", "undergrad"),
		TargetType: appModels.TargetPost,
		TargetID:   scam.ID,
		Reason:     appModels.ReasonFraud,
		Details:    "선입금만 요구하고 연락이 끊깁니다.",
		Status:     appModels.ReportPending,
	}}

	return ds
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
