package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-auditor/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-auditor/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/storage"
	"github.com/cmlabs-hris/timesheet-auditor/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/timesheet-auditor/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/timesheet-auditor/internal/service/auth"
	"github.com/cmlabs-hris/timesheet-auditor/internal/service/report"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}

	vocabulary, err := config.LoadVocabulary(cfg.Audit.VocabularyFile)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	engineCfg := auditService.DefaultEngineConfig()
	engineCfg.Vocabulary = vocabulary
	engine := auditService.NewEngine(engineCfg)

	withTx := postgresql.RunInTx(db)
	auditorRepo := postgresql.NewAuditorRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	reportService := report.NewReportService(fileStorage)
	authService := serviceAuth.NewAuthService(withTx, auditorRepo, JWTService, JWTRepository)
	auditSvc := auditService.NewAuditService(withTx, auditRepo, reportService, engine, auditService.ServiceConfig{
		Workers:   cfg.Audit.Workers,
		Retention: cfg.Audit.Retention,
	})

	scheduler := cron.NewScheduler()
	if cfg.Audit.Retention > 0 {
		cron.NewRetentionJobs(auditSvc, cfg.Audit.PurgeInterval).RegisterJobs(scheduler)
		scheduler.Start(ctx)
	}
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authService, cfg.App.Env == "production")
	auditHandler := appHTTP.NewAuditHandler(auditSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		authHandler,
		auditHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
