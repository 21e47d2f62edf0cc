package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/pkg/logger"
	"github.com/fastygo/taskapi/repository"
)

// UseCase runs exactly one gateway call per operation and turns absent
// records into domain.ErrTaskNotFound.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: log.Named("tasks"),
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, uc.storeFailure(ctx, "list", 0, err)
	}
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := uc.tasks.Find(ctx, id)
	if err != nil {
		return nil, uc.storeFailure(ctx, "get", id, err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	task, err := uc.tasks.Insert(ctx, in)
	if err != nil {
		return nil, uc.storeFailure(ctx, "create", 0, err)
	}
	logger.WithRequestID(ctx, uc.logger).Debug("task created", zap.Int64("task_id", task.ID))
	return task, nil
}

func (uc *UseCase) ReplaceTask(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	task, err := uc.tasks.Replace(ctx, id, in)
	if err != nil {
		return nil, uc.storeFailure(ctx, "replace", id, err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	removed, err := uc.tasks.Remove(ctx, id)
	if err != nil {
		return uc.storeFailure(ctx, "delete", id, err)
	}
	if !removed {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (uc *UseCase) storeFailure(ctx context.Context, op string, id int64, err error) error {
	fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
	if id != 0 {
		fields = append(fields, zap.Int64("task_id", id))
	}
	logger.WithRequestID(ctx, uc.logger).Error("task store failure", fields...)
	return err
}
