package repositories_test

import (
	"context"
	"sync"
	"testing"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	ds := testDataset()
	ds.Users = append(ds.Users, ds.Users[0])

	store := repositories.NewStore()
	err := store.Load(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate user id")
}

func TestLoadRejectsMissingIDs(t *testing.T) {
	store := repositories.NewStore()
	err := store.Load(repositories.Dataset{Campuses: []models.Campus{{Slug: "x"}}})
	assert.Error(t, err)
}

func TestWithIDGenerator(t *testing.T) {
	store := repositories.NewStore(repositories.WithIDGenerator(func() string { return "fixed-id" }))
	require.NoError(t, store.Load(testDataset()))
	repos := repositories.NewRepositories(store, nopLogger())

	p, err := repos.PostRepository.Create(context.Background(), postInput(models.CategoryMarket, "Desk lamp"), studentA)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", p.ID)
}

func TestViewRejectsWrites(t *testing.T) {
	store := repositories.NewStore()
	assert.Panics(t, func() {
		_ = store.View(func(tx *repositories.Tx) error {
			tx.InsertPost(&models.Post{BaseEntity: models.BaseEntity{ID: "p"}})
			return nil
		})
	})
}

// Concurrent starts for the same pair must still collapse into one thread.
func TestConcurrentStartThreadDedup(t *testing.T) {
	f := newFixture(t)
	p := f.createPost(t, studentA, postInput(models.CategoryMarket, "Desk lamp"))

	const workers = 16
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			th, err := f.repos.ChatRepository.StartThread(f.ctx, dto.StartChatInput{PostID: p.ID}, studentA2)
			if assert.NoError(t, err) {
				ids[i] = th.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, f.store.Snapshot().ChatThreads, 1)
}

func TestConcurrentViewCount(t *testing.T) {
	f := newFixture(t)
	p := f.createPost(t, studentA, postInput(models.CategoryMarket, "Desk lamp"))

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.repos.PostRepository.IncrementViewCount(f.ctx, p.ID, studentA2))
		}()
	}
	wg.Wait()

	got, err := f.repos.PostRepository.GetByID(f.ctx, p.ID, studentA)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.ViewCount)
}
