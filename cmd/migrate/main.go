// Command migrate applies the SQL migrations under MIGRATIONS_PATH to the
// Postgres database named by DATABASE_URL. The server never creates schema
// on its own unless RUN_MIGRATIONS is set.
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/fastygo/taskapi/internal/config"
	pgInfra "github.com/fastygo/taskapi/internal/infrastructure/postgres"
	"github.com/fastygo/taskapi/internal/infrastructure/store"
	"github.com/fastygo/taskapi/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	dir := flag.String("path", cfg.Migrations.Path, "directory holding *.up.sql / *.down.sql files")
	flag.Parse()

	zapLogger, err := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	target, err := store.ParseURL(cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("invalid DATABASE_URL", zap.Error(err))
	}
	if target.Driver != store.DriverPostgres {
		zapLogger.Info("nothing to migrate", zap.String("driver", string(target.Driver)))
		return
	}

	if err := pgInfra.RunMigrations(target.DSN, *dir, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}
}
