package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/taskapi/domain"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// storeErr classifies a driver error. Constraint violations keep the server
// message and detail so callers see why the row was rejected.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return domain.StoreError(op, errors.Join(err, errors.New(pgErr.Detail)))
	}
	return domain.StoreError(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
