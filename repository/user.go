package repository

import (
	"context"

	"github.com/fastygo/taskapi/domain"
)

// UserRepository is the persistence gateway for users, with the same
// absent-vs-failure contract as TaskRepository.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Find(ctx context.Context, id int64) (*domain.User, error)
	Insert(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Replace(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error)
	Remove(ctx context.Context, id int64) (bool, error)
}
