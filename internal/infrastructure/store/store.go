// Package store opens the backend named by the connection string and hands
// out its gateways. It is built once at startup and shared read-only by all
// handlers.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/taskapi/internal/config"
	pgInfra "github.com/fastygo/taskapi/internal/infrastructure/postgres"
	"github.com/fastygo/taskapi/repository"
	"github.com/fastygo/taskapi/repository/boltdb"
	"github.com/fastygo/taskapi/repository/postgres"
)

// Driver names the backend kind.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverBolt     Driver = "bolt"
)

// Store owns the backend connection and both entity gateways.
type Store struct {
	Driver Driver
	Tasks  repository.TaskRepository
	Users  repository.UserRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Target is a parsed connection string.
type Target struct {
	Driver Driver
	// DSN is the postgres connection string or the bolt file path.
	DSN string
}

// ParseURL maps a connection string to a backend. postgres:// and
// postgresql:// select Postgres; bolt://path selects an embedded bbolt file.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("empty connection string")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse connection string: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return Target{Driver: DriverPostgres, DSN: raw}, nil
	case "bolt":
		path := strings.TrimPrefix(raw, "bolt://")
		if path == "" {
			return Target{}, fmt.Errorf("bolt connection string has no path")
		}
		return Target{Driver: DriverBolt, DSN: path}, nil
	default:
		return Target{}, fmt.Errorf("unsupported store scheme %q", u.Scheme)
	}
}

// Open connects to the backend selected by cfg.URL and verifies it answers.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	target, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	switch target.Driver {
	case DriverPostgres:
		pool, err := pgInfra.NewPool(ctx, target.DSN, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return FromPool(pool), nil
	default:
		db, err := boltdb.Open(target.DSN)
		if err != nil {
			return nil, fmt.Errorf("bolt: %w", err)
		}
		logger.Info("opened bolt store", zap.String("path", db.Path()))
		return FromBolt(db), nil
	}
}

// FromPool wraps an existing pgx pool.
func FromPool(pool *pgxpool.Pool) *Store {
	return &Store{
		Driver: DriverPostgres,
		Tasks:  postgres.NewTaskRepository(pool),
		Users:  postgres.NewUserRepository(pool),
		ping:   pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// FromBolt wraps an open bbolt database.
func FromBolt(db *boltdb.DB) *Store {
	return &Store{
		Driver: DriverBolt,
		Tasks:  boltdb.NewTaskRepository(db),
		Users:  boltdb.NewUserRepository(db),
		ping:   db.Ping,
		close:  db.Close,
	}
}

// Ping checks that the backend still answers.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return fmt.Errorf("store not configured")
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
