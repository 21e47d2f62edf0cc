package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskapi/api/handler"
	"github.com/fastygo/taskapi/internal/config"
	"github.com/fastygo/taskapi/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/taskapi/internal/infrastructure/postgres"
	"github.com/fastygo/taskapi/internal/infrastructure/store"
	"github.com/fastygo/taskapi/internal/middleware"
	"github.com/fastygo/taskapi/internal/router"
	"github.com/fastygo/taskapi/internal/services/lifecycle"
	"github.com/fastygo/taskapi/pkg/httpcontext"
	"github.com/fastygo/taskapi/pkg/logger"
	"github.com/fastygo/taskapi/pkg/metrics"
	taskUC "github.com/fastygo/taskapi/usecase/task"
	userUC "github.com/fastygo/taskapi/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	target, err := store.ParseURL(cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("invalid DATABASE_URL", zap.Error(err))
	}
	if cfg.Migrations.Enabled && target.Driver == store.DriverPostgres {
		if err := pgInfra.RunMigrations(target.DSN, cfg.Migrations.Path, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
	}

	// Refuse to serve when the store cannot be reached; Fatal exits with status 1.
	st, err := store.Open(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("store connection failed", zap.String("driver", string(target.Driver)), zap.Error(err))
	}
	manager.Register("store", func(ctx context.Context) error {
		return st.Close()
	})

	mon, err := monitor.New(string(st.Driver), st, cfg.Monitor.Interval, zapLogger)
	if err != nil {
		zapLogger.Fatal("health monitor setup failed", zap.Error(err))
	}
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUC.New(st.Tasks, zapLogger), ctxAdapter, zapLogger),
		User:   apiHandler.NewUserHandler(userUC.New(st.Users, zapLogger), ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	var m *metrics.Metrics
	if cfg.HTTP.EnableMetrics {
		m = metrics.New()
	}
	r := router.New(handlers, m)

	server := &fasthttp.Server{
		Handler: middleware.Chain(r.Handler,
			middleware.RequestID(),
			middleware.AccessLog(zapLogger),
			middleware.Instrument(m),
			middleware.Recover(zapLogger),
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store", string(st.Driver)),
			zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
