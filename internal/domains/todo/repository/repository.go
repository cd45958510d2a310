package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sort"
	"sync"

	"todos/infras/otel"
	"todos/internal/domains/todo/model"
	"todos/internal/domains/todo/model/dto"
	"todos/shared/constant"
)

type Todo interface {
	Insert(ctx context.Context, todo model.Todo) (model.Todo, error)
	Get(ctx context.Context, id int64) (model.Todo, error)
	GetAll(ctx context.Context, filter dto.ListTodosFilter) ([]model.Todo, error)
	Exist(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, fields map[string]any) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// repositoryImpl keeps the whole collection in process memory. The mutex
// makes each operation atomic under Go's preemptive scheduling, so a
// concurrent update and delete on the same ID cannot lose writes. State is
// volatile and resets on restart.
type repositoryImpl struct {
	mu     sync.RWMutex
	todos  map[int64]model.Todo
	nextID int64
	otel   otel.Otel
}

func New(ot otel.Otel) Todo {
	return &repositoryImpl{
		todos:  make(map[int64]model.Todo),
		nextID: 1,
		otel:   ot,
	}
}

// Insert stores the todo under a freshly allocated ID. IDs are strictly
// increasing for the lifetime of the store and never reused, even after
// deletion.
func (repo *repositoryImpl) Insert(ctx context.Context, todo model.Todo) (model.Todo, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Insert")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	todo.ID = repo.nextID
	repo.nextID++

	repo.todos[todo.ID] = todo

	return todo, nil
}

// Get returns the zero todo when the ID is unknown.
func (repo *repositoryImpl) Get(ctx context.Context, id int64) (model.Todo, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Get")
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return repo.todos[id], nil
}

// GetAll lists todos in ascending ID order, optionally filtered on exact
// done equality. The ordering is deterministic for a given store state.
func (repo *repositoryImpl) GetAll(ctx context.Context, filter dto.ListTodosFilter) ([]model.Todo, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAll")
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	ids := make([]int64, 0, len(repo.todos))
	for id := range repo.todos {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	todos := make([]model.Todo, 0, len(ids))

	for _, id := range ids {
		todo := repo.todos[id]
		if filter.Done != nil && todo.Done != *filter.Done {
			continue
		}

		todos = append(todos, todo)
	}

	return todos, nil
}

func (repo *repositoryImpl) Exist(ctx context.Context, id int64) (bool, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Exist")
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.todos[id]

	return ok, nil
}

// Update applies the given fields on top of a copy of the stored record and
// swaps it in, all under the store lock. An unknown ID yields the zero todo.
func (repo *repositoryImpl) Update(ctx context.Context, id int64, fields map[string]any) (model.Todo, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Update")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	todo, ok := repo.todos[id]
	if !ok {
		return model.Todo{}, nil
	}

	if title, ok := fields[model.FieldTitle].(string); ok {
		todo.Title = title
	}

	if done, ok := fields[model.FieldDone].(bool); ok {
		todo.Done = done
	}

	repo.todos[id] = todo

	return todo, nil
}

// Delete removes the todo. Deleting an unknown ID is a no-op.
func (repo *repositoryImpl) Delete(ctx context.Context, id int64) error {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Delete")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	delete(repo.todos, id)

	return nil
}
