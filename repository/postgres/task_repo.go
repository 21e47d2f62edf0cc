package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/repository"
)

const taskColumns = `id, title, description, is_completed`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks`)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeErr("list tasks", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) Find(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("find task", err)
	}
	return task, nil
}

func (r *taskRepository) Insert(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	const query = `
	INSERT INTO tasks (title, description)
	VALUES ($1, $2)
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query, in.Title, in.Description))
	if err != nil {
		return nil, storeErr("insert task", err)
	}
	return task, nil
}

func (r *taskRepository) Replace(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3
	WHERE id = $1
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, in.Title, in.Description))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("replace task", err)
	}
	return task, nil
}

func (r *taskRepository) Remove(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, storeErr("remove task", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.IsCompleted); err != nil {
		return nil, err
	}
	return &task, nil
}
