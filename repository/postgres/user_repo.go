package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/repository"
)

const userColumns = `id, name, email`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("list users", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (r *userRepository) Find(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("find user", err)
	}
	return user, nil
}

func (r *userRepository) Insert(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	const query = `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, in.Name, in.Email))
	if err != nil {
		return nil, storeErr("insert user", err)
	}
	return user, nil
}

func (r *userRepository) Replace(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	const query = `
	UPDATE users
	SET name = $2,
		email = $3
	WHERE id = $1
	RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, in.Name, in.Email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("replace user", err)
	}
	return user, nil
}

func (r *userRepository) Remove(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, storeErr("remove user", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		return nil, err
	}
	return &user, nil
}
