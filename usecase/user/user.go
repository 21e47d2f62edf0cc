package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/pkg/logger"
	"github.com/fastygo/taskapi/repository"
)

// UseCase mirrors the task use case: one gateway call per operation, absent
// records become domain.ErrUserNotFound.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: log.Named("users"),
	}
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, uc.storeFailure(ctx, "list", 0, err)
	}
	return users, nil
}

func (uc *UseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.users.Find(ctx, id)
	if err != nil {
		return nil, uc.storeFailure(ctx, "get", id, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UseCase) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	user, err := uc.users.Insert(ctx, in)
	if err != nil {
		return nil, uc.storeFailure(ctx, "create", 0, err)
	}
	logger.WithRequestID(ctx, uc.logger).Debug("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

func (uc *UseCase) ReplaceUser(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	user, err := uc.users.Replace(ctx, id, in)
	if err != nil {
		return nil, uc.storeFailure(ctx, "replace", id, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UseCase) DeleteUser(ctx context.Context, id int64) error {
	removed, err := uc.users.Remove(ctx, id)
	if err != nil {
		return uc.storeFailure(ctx, "delete", id, err)
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	return nil
}

func (uc *UseCase) storeFailure(ctx context.Context, op string, id int64, err error) error {
	fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
	if id != 0 {
		fields = append(fields, zap.Int64("user_id", id))
	}
	logger.WithRequestID(ctx, uc.logger).Error("user store failure", fields...)
	return err
}
