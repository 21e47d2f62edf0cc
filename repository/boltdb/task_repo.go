package boltdb

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/repository"
)

type taskRecord struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

func (rec taskRecord) toDomain() domain.Task {
	return domain.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		IsCompleted: rec.IsCompleted,
	}
}

type taskRepository struct {
	db *DB
}

// NewTaskRepository returns a bbolt-backed implementation of TaskRepository.
func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	tasks := make([]domain.Task, 0)
	err := r.db.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).ForEach(func(_, v []byte) error {
			var rec taskRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			tasks = append(tasks, rec.toDomain())
			return nil
		})
	})
	if err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) Find(ctx context.Context, id int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("find task", err)
	}
	var (
		rec   taskRecord
		found bool
	)
	err := r.db.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = load(tx.Bucket(tasksBucket), id, &rec)
		return err
	})
	if err != nil {
		return nil, domain.StoreError("find task", err)
	}
	if !found {
		return nil, nil
	}
	task := rec.toDomain()
	return &task, nil
}

func (r *taskRepository) Insert(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("insert task", err)
	}
	rec := taskRecord{Title: in.Title, Description: in.Description}
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tasksBucket)
		id, err := nextID(b)
		if err != nil {
			return err
		}
		rec.ID = id
		return store(b, id, rec)
	})
	if err != nil {
		return nil, domain.StoreError("insert task", err)
	}
	task := rec.toDomain()
	return &task, nil
}

func (r *taskRepository) Replace(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("replace task", err)
	}
	var (
		rec   taskRecord
		found bool
	)
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tasksBucket)
		var err error
		if found, err = load(b, id, &rec); err != nil || !found {
			return err
		}
		rec.Title = in.Title
		rec.Description = in.Description
		return store(b, id, rec)
	})
	if err != nil {
		return nil, domain.StoreError("replace task", err)
	}
	if !found {
		return nil, nil
	}
	task := rec.toDomain()
	return &task, nil
}

func (r *taskRepository) Remove(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.StoreError("remove task", err)
	}
	var removed bool
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tasksBucket)
		key := itob(id)
		if b.Get(key) == nil {
			return nil
		}
		removed = true
		return b.Delete(key)
	})
	if err != nil {
		return false, domain.StoreError("remove task", err)
	}
	return removed, nil
}
