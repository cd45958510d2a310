package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/infras/otel/mocks"
	"todos/internal/domains/todo/model"
	"todos/internal/domains/todo/model/dto"
	"todos/internal/domains/todo/repository"
)

func newRepository() repository.Todo {
	return repository.New(mocks.NewOtel())
}

func TestRepository_Insert(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	first, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "buy milk", first.Title)
	assert.False(t, first.Done)

	second, err := repo.Insert(ctx, model.Todo{Title: "walk dog"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestRepository_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	for i := 0; i < 3; i++ {
		_, err := repo.Insert(ctx, model.Todo{Title: "task"})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, 2))
	require.NoError(t, repo.Delete(ctx, 3))

	todo, err := repo.Insert(ctx, model.Todo{Title: "task"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), todo.ID, "expected the counter to keep increasing past deleted IDs")
}

func TestRepository_Get(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	inserted, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
	require.NoError(t, err)

	todo, err := repo.Get(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted, todo)

	missing, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, missing.ID)
}

func TestRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	for _, todo := range []model.Todo{
		{Title: "buy milk"},
		{Title: "walk dog", Done: true},
		{Title: "water plants"},
	} {
		_, err := repo.Insert(ctx, todo)
		require.NoError(t, err)
	}

	t.Run("unfiltered in ascending ID order", func(t *testing.T) {
		todos, err := repo.GetAll(ctx, dto.ListTodosFilter{})
		require.NoError(t, err)
		require.Len(t, todos, 3)
		assert.Equal(t, int64(1), todos[0].ID)
		assert.Equal(t, int64(2), todos[1].ID)
		assert.Equal(t, int64(3), todos[2].ID)
	})

	t.Run("filtered by done", func(t *testing.T) {
		done := true
		todos, err := repo.GetAll(ctx, dto.ListTodosFilter{Done: &done})
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, "walk dog", todos[0].Title)
	})

	t.Run("filtered by not done", func(t *testing.T) {
		done := false
		todos, err := repo.GetAll(ctx, dto.ListTodosFilter{Done: &done})
		require.NoError(t, err)
		require.Len(t, todos, 2)
	})

	t.Run("empty store yields an empty list", func(t *testing.T) {
		todos, err := newRepository().GetAll(ctx, dto.ListTodosFilter{})
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})
}

func TestRepository_Exist(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	inserted, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
	require.NoError(t, err)

	exist, err := repo.Exist(ctx, inserted.ID)
	require.NoError(t, err)
	assert.True(t, exist)

	exist, err = repo.Exist(ctx, 99)
	require.NoError(t, err)
	assert.False(t, exist)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only the given fields", func(t *testing.T) {
		repo := newRepository()
		inserted, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, inserted.ID, map[string]any{model.FieldDone: true})
		require.NoError(t, err)
		assert.Equal(t, "buy milk", updated.Title)
		assert.True(t, updated.Done)

		updated, err = repo.Update(ctx, inserted.ID, map[string]any{model.FieldTitle: "walk dog"})
		require.NoError(t, err)
		assert.Equal(t, "walk dog", updated.Title)
		assert.True(t, updated.Done, "expected done to survive a title-only patch")
	})

	t.Run("empty field map changes nothing", func(t *testing.T) {
		repo := newRepository()
		inserted, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, inserted.ID, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, inserted, updated)
	})

	t.Run("unknown ID yields the zero todo", func(t *testing.T) {
		repo := newRepository()

		updated, err := repo.Update(ctx, 99, map[string]any{model.FieldDone: true})
		require.NoError(t, err)
		assert.Zero(t, updated.ID)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	inserted, err := repo.Insert(ctx, model.Todo{Title: "buy milk"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, inserted.ID))

	exist, err := repo.Exist(ctx, inserted.ID)
	require.NoError(t, err)
	assert.False(t, exist)

	// Deleting again, or deleting an ID that never existed, is a no-op.
	require.NoError(t, repo.Delete(ctx, inserted.ID))
	require.NoError(t, repo.Delete(ctx, 99))
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := newRepository()

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				_, err := repo.Insert(ctx, model.Todo{Title: "task"})
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	todos, err := repo.GetAll(ctx, dto.ListTodosFilter{})
	require.NoError(t, err)
	require.Len(t, todos, workers*perWorker)

	seen := make(map[int64]bool, len(todos))
	for _, todo := range todos {
		assert.False(t, seen[todo.ID], "expected every ID to be unique")
		seen[todo.ID] = true
	}
}
