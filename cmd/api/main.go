package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/worktravel/worktravel-api/internal/config"
	appHTTP "github.com/worktravel/worktravel-api/internal/handler/http"
	"github.com/worktravel/worktravel-api/internal/pkg/cron"
	"github.com/worktravel/worktravel-api/internal/pkg/database"
	"github.com/worktravel/worktravel-api/internal/pkg/errtrack"
	"github.com/worktravel/worktravel-api/internal/pkg/jwt"
	"github.com/worktravel/worktravel-api/internal/pkg/storage"
	"github.com/worktravel/worktravel-api/internal/repository/postgresql"
	importService "github.com/worktravel/worktravel-api/internal/service/csvimport"
	"github.com/worktravel/worktravel-api/internal/service/master"
	reportService "github.com/worktravel/worktravel-api/internal/service/report"
	settingsService "github.com/worktravel/worktravel-api/internal/service/settings"
	workdayService "github.com/worktravel/worktravel-api/internal/service/workday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktravel-api"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	errtrack.Init(errtrack.Options{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.App.Env,
		Release:     cfg.Sentry.Release,
	})
	defer errtrack.Flush()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	locationRepo := postgresql.NewLocationRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	workDayRepo := postgresql.NewWorkDayRepository(db)
	importLogRepo := postgresql.NewImportLogRepository(db)
	txManager := postgresql.NewTxManager(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	masterService := master.NewMasterService(locationRepo, workDayRepo, txManager)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	workDaySvc := workdayService.NewWorkDayService(workDayRepo, masterService, settingsSvc)
	reportSvc := reportService.NewReportService(workDayRepo, masterService, settingsSvc)
	importSvc := importService.NewImportService(importLogRepo, workDayRepo, masterService, fileStorage, txManager, cfg.Import.MaxUploadBytes)

	scheduler := cron.NewScheduler()
	cron.NewImportJobs(importSvc, cfg.Import.ArchiveRetention, cfg.Import.PurgeInterval).RegisterJobs(scheduler)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.NewMasterHandler(masterService),
		appHTTP.NewSettingsHandler(settingsSvc),
		appHTTP.NewWorkDayHandler(workDaySvc),
		appHTTP.NewImportHandler(importSvc, cfg.Import.MaxUploadBytes),
		appHTTP.NewReportHandler(reportSvc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
