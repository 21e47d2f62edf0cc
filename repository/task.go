package repository

import (
	"context"

	"github.com/fastygo/taskapi/domain"
)

// TaskRepository is the persistence gateway for tasks. Absent rows are
// reported as a nil record, never as an error; every returned error is a
// STORE-classified *domain.Error.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Find(ctx context.Context, id int64) (*domain.Task, error)
	Insert(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	Replace(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error)
	Remove(ctx context.Context, id int64) (bool, error)
}
