package boltdb

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/repository"
)

type userRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (rec userRecord) toDomain() domain.User {
	return domain.User{ID: rec.ID, Name: rec.Name, Email: rec.Email}
}

type userRepository struct {
	db *DB
}

// NewUserRepository returns a bbolt-backed implementation of UserRepository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("list users", err)
	}
	users := make([]domain.User, 0)
	err := r.db.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).ForEach(func(_, v []byte) error {
			var rec userRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			users = append(users, rec.toDomain())
			return nil
		})
	})
	if err != nil {
		return nil, domain.StoreError("list users", err)
	}
	return users, nil
}

func (r *userRepository) Find(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("find user", err)
	}
	var (
		rec   userRecord
		found bool
	)
	err := r.db.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = load(tx.Bucket(usersBucket), id, &rec)
		return err
	})
	if err != nil {
		return nil, domain.StoreError("find user", err)
	}
	if !found {
		return nil, nil
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("insert user", err)
	}
	rec := userRecord{Name: in.Name, Email: in.Email}
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		id, err := nextID(b)
		if err != nil {
			return err
		}
		rec.ID = id
		return store(b, id, rec)
	})
	if err != nil {
		return nil, domain.StoreError("insert user", err)
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *userRepository) Replace(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreError("replace user", err)
	}
	var (
		rec   userRecord
		found bool
	)
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		var err error
		if found, err = load(b, id, &rec); err != nil || !found {
			return err
		}
		rec.Name = in.Name
		rec.Email = in.Email
		return store(b, id, rec)
	})
	if err != nil {
		return nil, domain.StoreError("replace user", err)
	}
	if !found {
		return nil, nil
	}
	user := rec.toDomain()
	return &user, nil
}

func (r *userRepository) Remove(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.StoreError("remove user", err)
	}
	var removed bool
	err := r.db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		key := itob(id)
		if b.Get(key) == nil {
			return nil
		}
		removed = true
		return b.Delete(key)
	})
	if err != nil {
		return false, domain.StoreError("remove user", err)
	}
	return removed, nil
}
