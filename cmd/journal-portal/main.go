package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/journal-portal/api/swagger"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/repository"
	"github.com/noah-isme/journal-portal/internal/service"
	"github.com/noah-isme/journal-portal/internal/session"
	"github.com/noah-isme/journal-portal/pkg/cache"
	"github.com/noah-isme/journal-portal/pkg/config"
	"github.com/noah-isme/journal-portal/pkg/database"
	"github.com/noah-isme/journal-portal/pkg/logger"
)

// @title Journal Portal
// @version 1.0.0
// @description Backend-for-frontend of the attendance and grade journal
// @BasePath /
// @schemes http

const (
	sweepInterval = 5 * time.Minute
	purgeInterval = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("session storage unavailable", zap.String("backend", cfg.Session.Backend), zap.Error(err))
	}
	defer closeStorage()

	validate := validator.New()
	metrics := service.NewMetricsService()
	client := gateway.New(gateway.Config{BaseURL: cfg.Upstream.BaseURL, Timeout: cfg.Upstream.Timeout}, nil, metrics, logr)

	loc := cfg.Location()
	lessons := service.NewLessonWorkspace(loc, nil, metrics, logr)
	manager := session.NewManager(storage, client, validate, logr, session.ManagerOptions{
		Store:          session.Options{FallbackTTL: cfg.Session.TTL},
		RestoreTimeout: cfg.Upstream.Timeout,
		OnTeardown:     lessons.Forget,
	})
	defer manager.Close()
	metrics.TrackSessions(manager)
	go manager.Run(ctx, sweepInterval, cfg.Session.TTL)

	app := &portal{
		cfg:      cfg,
		logger:   logr,
		client:   client,
		manager:  manager,
		metrics:  metrics,
		validate: validate,
		schedule: service.NewScheduleService(loc, nil, logr),
		teacher:  service.NewTeacherService(loc, nil, logr),
		student:  service.NewStudentService(loc, nil, logr),
		admin:    service.NewAdminService(validate, service.NewImportValidator(cfg.Imports.MaxFileSizeBytes), logr),
		reports:  service.NewReportService(validate, logr),
		lessons:  lessons,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL, "sessions", cfg.Session.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// openStorage connects the configured session backend. The returned closer is always safe to call.
func openStorage(ctx context.Context, cfg *config.Config, logr *zap.Logger) (session.Storage, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisSessionRepository(client, cfg.Redis.Prefix, logr)
		return repo, func() { _ = repo.Close() }, nil

	case config.SessionBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		go purgeExpired(ctx, repo, logr)
		return repo, func() { _ = db.Close() }, nil

	case config.SessionBackendMemory, "":
		return session.NewMemoryStorage(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
}

func purgeExpired(ctx context.Context, repo *repository.PostgresSessionRepository, logr *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.PurgeExpired(ctx)
			if err != nil {
				logr.Warn("purge expired sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				logr.Debug("expired sessions purged", zap.Int64("rows", removed))
			}
		}
	}
}
