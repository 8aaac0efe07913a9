package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/campulist/campulist/internal/app/auth"
	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/repositories"
	"github.com/campulist/campulist/internal/app/services"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/campulist/campulist/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []*models.ChatMessage
}

func (n *recordingNotifier) PublishMessage(msg *models.ChatMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

type harness struct {
	api      *services.API
	sessions services.SessionService
	store    *repositories.Store
	notifier *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	current := epoch
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}

	store := repositories.NewStore(repositories.WithClock(clock))
	require.NoError(t, store.Load(seed.Default(epoch)))
	repos := repositories.NewRepositories(store, zerolog.Nop())
	sessions := services.NewSessionService(repos.UserRepository, zerolog.Nop())
	notifier := &recordingNotifier{}

	return &harness{
		api:      services.NewAPI(repos, sessions, notifier, zerolog.Nop()),
		sessions: sessions,
		store:    store,
		notifier: notifier,
	}
}

// as logs in and returns a context carrying the resulting session.
func (h *harness) as(t *testing.T, input dto.MockLoginInput) context.Context {
	t.Helper()
	res := h.api.Login(context.Background(), input)
	require.True(t, res.OK, "login failed: %+v", res.Error)
	return auth.ContextWithSession(context.Background(), res.Data)
}

func roleIn(role models.UserRole, campusID string) dto.MockLoginInput {
	return dto.MockLoginInput{Role: role, CampusID: &campusID}
}

func requireFailure[T any](t *testing.T, res dto.Result[T], kind apperrors.Kind) {
	t.Helper()
	require.False(t, res.OK)
	require.NotNil(t, res.Error)
	assert.Equal(t, kind, res.Error.Code, res.Error.Message)
}

func TestDefaultSessionIsFirstStudent(t *testing.T) {
	h := newHarness(t)

	res := h.api.GetSession(context.Background())
	require.True(t, res.OK)
	assert.Equal(t, seed.UserID("kaist-main", "undergrad"), res.Data.UserID)
	assert.Equal(t, models.RoleStudent, res.Data.Role)
	require.NotNil(t, res.Data.StudentType)
	assert.Equal(t, models.StudentUndergrad, *res.Data.StudentType)

	user := h.api.GetCurrentUser(context.Background())
	require.True(t, user.OK)
	assert.Equal(t, res.Data.UserID, user.Data.ID)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	t.Run("role defaults to current campus", func(t *testing.T) {
		res := h.api.Login(context.Background(), dto.MockLoginInput{Role: models.RoleMerchant})
		require.True(t, res.OK)
		assert.Equal(t, seed.CampusKAIST, res.Data.CampusID)
		assert.Equal(t, seed.UserID("kaist-main", "merchant"), res.Data.UserID)
		assert.Nil(t, res.Data.StudentType)
	})

	t.Run("campus default follows the caller", func(t *testing.T) {
		ctx := auth.ContextWithSession(context.Background(), models.Session{
			UserID: seed.UserID("cnu", "admin"), Role: models.RoleAdmin, CampusID: seed.CampusCNU,
		})
		res := h.api.Login(ctx, dto.MockLoginInput{Role: models.RoleProfessor})
		require.True(t, res.OK)
		assert.Equal(t, seed.UserID("cnu", "professor"), res.Data.UserID)
	})

	t.Run("student type narrows the match", func(t *testing.T) {
		grad := models.StudentGraduate
		res := h.api.Login(context.Background(), dto.MockLoginInput{Role: models.RoleStudent, StudentType: &grad})
		require.True(t, res.OK)
		assert.Equal(t, seed.UserID("kaist-main", "graduate"), res.Data.UserID)
	})

	t.Run("by user id", func(t *testing.T) {
		id := seed.UserID("cnu", "staff")
		res := h.api.Login(context.Background(), dto.MockLoginInput{UserID: &id})
		require.True(t, res.OK)
		assert.Equal(t, seed.CampusCNU, res.Data.CampusID)
	})

	t.Run("no match", func(t *testing.T) {
		requireFailure(t, h.api.Login(context.Background(), roleIn(models.RoleMerchant, seed.CampusWoosong)), apperrors.KindNotFound)
		id := "00000000-0000-4000-8000-000000000000"
		requireFailure(t, h.api.Login(context.Background(), dto.MockLoginInput{UserID: &id}), apperrors.KindNotFound)
	})

	t.Run("empty input", func(t *testing.T) {
		requireFailure(t, h.api.Login(context.Background(), dto.MockLoginInput{}), apperrors.KindBadRequest)
	})
}

func TestCurrentUserDeletedAfterLogin(t *testing.T) {
	ds := seed.Default(epoch)
	store := repositories.NewStore()
	require.NoError(t, store.Load(ds))
	repos := repositories.NewRepositories(store, zerolog.Nop())
	api := services.NewAPI(repos, services.NewSessionService(repos.UserRepository, zerolog.Nop()), nil, zerolog.Nop())

	deleted := epoch
	ds.Users[2].DeletedAt = &deleted
	gone := repositories.NewStore()
	require.NoError(t, gone.Load(ds))
	goneRepos := repositories.NewRepositories(gone, zerolog.Nop())
	goneAPI := services.NewAPI(goneRepos, services.NewSessionService(goneRepos.UserRepository, zerolog.Nop()), nil, zerolog.Nop())

	id := ds.Users[2].ID
	login := api.Login(context.Background(), dto.MockLoginInput{UserID: &id})
	require.True(t, login.OK)

	ctx := auth.ContextWithSession(context.Background(), login.Data)
	requireFailure(t, goneAPI.GetCurrentUser(ctx), apperrors.KindNotFound)
	requireFailure(t, goneAPI.Login(context.Background(), dto.MockLoginInput{UserID: &id}), apperrors.KindNotFound)
}

func TestAllowedCategories(t *testing.T) {
	h := newHarness(t)

	res := h.api.AllowedCategories(h.as(t, roleIn(models.RoleMerchant, seed.CampusKAIST)))
	require.True(t, res.OK)
	assert.ElementsMatch(t, []models.PostCategory{models.CategoryStore, models.CategoryJobs}, res.Data)

	res = h.api.AllowedCategories(h.as(t, roleIn(models.RoleAdmin, seed.CampusKAIST)))
	require.True(t, res.OK)
	assert.ElementsMatch(t, models.PostCategories, res.Data)
}

func TestListCampuses(t *testing.T) {
	h := newHarness(t)
	res := h.api.ListCampuses(context.Background())
	require.True(t, res.OK)
	require.Len(t, res.Data, 6)
	assert.Equal(t, "kaist-main", res.Data[0].Slug)
}

func TestCreatePostScenario(t *testing.T) {
	h := newHarness(t)
	ctx := h.as(t, roleIn(models.RoleStudent, seed.CampusKAIST))

	res := h.api.CreatePost(ctx, dto.CreatePostInput{
		Category:              models.CategoryHousing,
		Title:                 "Room for rent",
		Body:                  "Near the north gate, available in May.",
		ShowAffiliationPrefix: true,
	})
	require.True(t, res.OK, "%+v", res.Error)
	assert.Equal(t, models.PostActive, res.Data.Status)
	assert.Equal(t, "[카이스트 대전 본원][학부생] Room for rent", res.Data.DisplayTitle)

	store := h.api.CreatePost(ctx, dto.CreatePostInput{
		Category: models.CategoryStore,
		Title:    "Coffee coupon",
		Body:     "Buy one get one.",
	})
	requireFailure(t, store, apperrors.KindForbidden)

	promoted := h.api.CreatePost(ctx, dto.CreatePostInput{
		Category:   models.CategoryMarket,
		Title:      "Bike",
		Body:       "Barely used bike.",
		IsPromoted: true,
	})
	requireFailure(t, promoted, apperrors.KindBadRequest)
}

func TestListPostsAddsDisplayTitle(t *testing.T) {
	h := newHarness(t)

	res := h.api.ListPosts(context.Background(), dto.PostListQuery{})
	require.True(t, res.OK)
	require.NotEmpty(t, res.Data.Items)

	byID := map[string]dto.PostResponse{}
	for _, p := range res.Data.Items {
		byID[p.ID] = p
	}
	lab, ok := byID[seed.PostID("lab-assistant")]
	require.True(t, ok)
	assert.Equal(t, "[카이스트 대전 본원][교수] "+lab.Title, lab.DisplayTitle)

	room := byID[seed.PostID("sublet-room")]
	assert.Equal(t, room.Title, room.DisplayTitle)

	_, hidden := byID[seed.PostID("hidden-ticket")]
	assert.False(t, hidden)
	_, foreign := byID[seed.PostID("cnu-textbooks")]
	assert.False(t, foreign)
}

func TestGetPostCountsViews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := seed.PostID("desk-lamp")

	first := h.api.GetPost(ctx, id)
	require.True(t, first.OK)
	assert.Equal(t, int64(13), first.Data.ViewCount)

	second := h.api.GetPost(ctx, id)
	require.True(t, second.OK)
	assert.Equal(t, int64(14), second.Data.ViewCount)

	requireFailure(t, h.api.GetPost(ctx, seed.PostID("hidden-ticket")), apperrors.KindNotFound)
	requireFailure(t, h.api.GetPost(ctx, seed.PostID("cnu-textbooks")), apperrors.KindNotFound)
	requireFailure(t, h.api.GetPost(ctx, "missing"), apperrors.KindNotFound)
}

func TestUpdateDeletePromote(t *testing.T) {
	h := newHarness(t)
	owner := context.Background()
	id := seed.PostID("desk-lamp")

	reserved := models.PostReserved
	res := h.api.UpdatePost(owner, id, dto.UpdatePostInput{Status: &reserved})
	require.True(t, res.OK)
	assert.Equal(t, models.PostReserved, res.Data.Status)

	draft := models.PostDraft
	requireFailure(t, h.api.UpdatePost(owner, id, dto.UpdatePostInput{Status: &draft}), apperrors.KindConflict)

	other := h.as(t, roleIn(models.RoleProfessor, seed.CampusKAIST))
	requireFailure(t, h.api.UpdatePost(other, id, dto.UpdatePostInput{Status: &draft}), apperrors.KindForbidden)

	promo := h.api.PromotePost(owner, id, "2030-01-01T00:00:00Z")
	require.True(t, promo.OK)
	assert.True(t, promo.Data.IsPromoted)
	requireFailure(t, h.api.PromotePost(owner, id, "yesterday"), apperrors.KindBadRequest)

	del := h.api.DeletePost(owner, id)
	require.True(t, del.OK)
	assert.True(t, del.Data.Deleted)
	requireFailure(t, h.api.DeletePost(owner, id), apperrors.KindNotFound)
}

func TestChatFlowNotifies(t *testing.T) {
	h := newHarness(t)
	buyer := h.as(t, roleIn(models.RoleProfessor, seed.CampusKAIST))
	seller := context.Background()

	start := h.api.StartChat(buyer, dto.StartChatInput{PostID: seed.PostID("desk-lamp")})
	require.True(t, start.OK)
	assert.ElementsMatch(t, []string{seed.UserID("kaist-main", "undergrad"), seed.UserID("kaist-main", "professor")}, start.Data.ParticipantIDs)

	again := h.api.StartChat(buyer, dto.StartChatInput{PostID: seed.PostID("desk-lamp")})
	require.True(t, again.OK)
	assert.Equal(t, start.Data.ID, again.Data.ID)

	sent := h.api.SendMessage(buyer, start.Data.ID, dto.SendMessageInput{Body: "Still available?"})
	require.True(t, sent.OK)
	require.Len(t, h.notifier.messages, 1)
	assert.Equal(t, sent.Data.ID, h.notifier.messages[0].ID)

	requireFailure(t, h.api.SendMessage(buyer, start.Data.ID, dto.SendMessageInput{Body: "   "}), apperrors.KindBadRequest)
	assert.Len(t, h.notifier.messages, 1)

	threads := h.api.ListMyChats(seller)
	require.True(t, threads.OK)
	require.Len(t, threads.Data, 2)
	assert.Equal(t, start.Data.ID, threads.Data[0].ID)

	msgs := h.api.ListMessages(seller, start.Data.ID)
	require.True(t, msgs.OK)
	require.Len(t, msgs.Data, 1)

	thread := h.api.GetChatThread(seller, start.Data.ID)
	require.True(t, thread.OK)
	outsider := h.as(t, roleIn(models.RoleStaff, seed.CampusKAIST))
	requireFailure(t, h.api.GetChatThread(outsider, start.Data.ID), apperrors.KindNotFound)
}

func TestReportModerationScenario(t *testing.T) {
	h := newHarness(t)
	reporter := h.as(t, roleIn(models.RoleStaff, seed.CampusKAIST))
	admin := h.as(t, roleIn(models.RoleAdmin, seed.CampusKAIST))
	id := seed.PostID("lab-assistant")

	created := h.api.CreateReport(reporter, dto.CreateReportInput{
		TargetType: models.TargetPost,
		TargetID:   id,
		Reason:     models.ReasonSpam,
	})
	require.True(t, created.OK)

	requireFailure(t, h.api.ListReports(reporter, dto.ReportListQuery{}), apperrors.KindForbidden)

	list := h.api.ListReports(admin, dto.ReportListQuery{})
	require.True(t, list.OK)
	assert.Equal(t, 2, list.Data.Total)
	assert.Equal(t, created.Data.ID, list.Data.Items[0].ID)

	resolved := h.api.ResolveReport(admin, created.Data.ID, dto.ResolveReportInput{
		Status:     models.ReportActioned,
		HideTarget: true,
	})
	require.True(t, resolved.OK)
	assert.Equal(t, models.ReportActioned, resolved.Data.Status)

	requireFailure(t, h.api.GetPost(reporter, id), apperrors.KindNotFound)
	post := h.api.GetPost(admin, id)
	require.True(t, post.OK)
	assert.Equal(t, models.PostHidden, post.Data.Status)
}

type failingSessions struct {
	services.SessionService
	err error
}

func (f failingSessions) CurrentSession(context.Context) (models.Session, error) {
	return models.Session{}, f.err
}

type panickingUsers struct {
	repositories.UserRepository
}

func (panickingUsers) ListCampuses(context.Context, bool) ([]*models.Campus, error) {
	panic("boom")
}

func TestUnexpectedFailuresAreMasked(t *testing.T) {
	store := repositories.NewStore()
	require.NoError(t, store.Load(seed.Default(epoch)))
	repos := repositories.NewRepositories(store, zerolog.Nop())

	api := services.NewAPI(repos, failingSessions{err: errors.New("connection reset by peer")}, nil, zerolog.Nop())
	res := api.ListPosts(context.Background(), dto.PostListQuery{})
	requireFailure(t, res, apperrors.KindInternal)
	assert.Equal(t, "Unexpected API error.", res.Error.Message)

	repos.UserRepository = panickingUsers{repos.UserRepository}
	api = services.NewAPI(repos, services.NewSessionService(repos.UserRepository, zerolog.Nop()), nil, zerolog.Nop())
	campuses := api.ListCampuses(context.Background())
	requireFailure(t, campuses, apperrors.KindInternal)
	assert.Equal(t, "Unexpected API error.", campuses.Error.Message)
}
