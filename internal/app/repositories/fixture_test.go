package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/repositories"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	campusA = "3c8d5c48-f693-4f67-bf54-df73015f9e56"
	campusB = "84a7e7c4-44a6-4b2e-9f03-1d7fdf04f201"

	userStudentA  = "10000000-0000-4000-8000-000000000001"
	userStudentA2 = "10000000-0000-4000-8000-000000000002"
	userProfA     = "10000000-0000-4000-8000-000000000003"
	userMerchantA = "10000000-0000-4000-8000-000000000004"
	userAdminA    = "10000000-0000-4000-8000-000000000005"
	userStudentB  = "10000000-0000-4000-8000-000000000006"
	userAdminB    = "10000000-0000-4000-8000-000000000007"
)

var (
	undergrad = models.StudentUndergrad
	graduate  = models.StudentGraduate

	studentA  = models.Session{UserID: userStudentA, Role: models.RoleStudent, StudentType: &undergrad, CampusID: campusA}
	studentA2 = models.Session{UserID: userStudentA2, Role: models.RoleStudent, StudentType: &graduate, CampusID: campusA}
	profA     = models.Session{UserID: userProfA, Role: models.RoleProfessor, CampusID: campusA}
	merchantA = models.Session{UserID: userMerchantA, Role: models.RoleMerchant, CampusID: campusA}
	adminA    = models.Session{UserID: userAdminA, Role: models.RoleAdmin, CampusID: campusA}
	studentB  = models.Session{UserID: userStudentB, Role: models.RoleStudent, StudentType: &undergrad, CampusID: campusB}
	adminB    = models.Session{UserID: userAdminB, Role: models.RoleAdmin, CampusID: campusB}

	epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

const farFuture = "2030-01-01T00:00:00Z"

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	ctx   context.Context
	clock *stepClock
	store *repositories.Store
	repos *repositories.Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, testDataset())
}

func newFixtureWith(t *testing.T, ds repositories.Dataset) *fixture {
	t.Helper()

	clock := &stepClock{t: epoch}
	store := repositories.NewStore(repositories.WithClock(clock.Now))
	require.NoError(t, store.Load(ds))

	return &fixture{
		ctx:   context.Background(),
		clock: clock,
		store: store,
		repos: repositories.NewRepositories(store, nopLogger()),
	}
}

func testDataset() repositories.Dataset {
	base := func(id string) models.BaseEntity {
		return models.BaseEntity{ID: id, CreatedAt: epoch, UpdatedAt: epoch}
	}
	user := func(id, campus string, role models.UserRole, st *models.StudentType) models.User {
		return models.User{BaseEntity: base(id), CampusID: campus, Role: role, StudentType: st, Nickname: id[len(id)-2:]}
	}

	return repositories.Dataset{
		Campuses: []models.Campus{
			{BaseEntity: base(campusA), Slug: "kaist-main", NameKo: "카이스트 대전 본원", NameEn: "KAIST Main Campus (Daejeon)", City: "Daejeon", IsActive: true},
			{BaseEntity: base(campusB), Slug: "cnu", NameKo: "충남대학교", NameEn: "Chungnam National University", City: "Daejeon", IsActive: true},
		},
		Users: []models.User{
			user(userStudentA, campusA, models.RoleStudent, &undergrad),
			user(userStudentA2, campusA, models.RoleStudent, &graduate),
			user(userProfA, campusA, models.RoleProfessor, nil),
			user(userMerchantA, campusA, models.RoleMerchant, nil),
			user(userAdminA, campusA, models.RoleAdmin, nil),
			user(userStudentB, campusB, models.RoleStudent, &undergrad),
			user(userAdminB, campusB, models.RoleAdmin, nil),
		},
	}
}

func postInput(category models.PostCategory, title string) dto.CreatePostInput {
	return dto.CreatePostInput{
		Category: category,
		Title:    title,
		Body:     "A perfectly fine body text.",
	}
}

func (f *fixture) createPost(t *testing.T, s models.Session, input dto.CreatePostInput) *models.Post {
	t.Helper()
	p, err := f.repos.PostRepository.Create(f.ctx, input, s)
	require.NoError(t, err)
	return p
}

// setStatus forces a status through an admin session.
func (f *fixture) setStatus(t *testing.T, id string, status models.PostStatus) {
	t.Helper()
	_, err := f.repos.PostRepository.Update(f.ctx, id, dto.UpdatePostInput{Status: &status}, adminA)
	require.NoError(t, err)
}

func assertKind(t *testing.T, want apperrors.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apperrors.KindOf(err), "error: %v", err)
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
