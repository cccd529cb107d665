package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metaview/recordings-ms-go/internal/cache"
	"github.com/metaview/recordings-ms-go/internal/config"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/handler/api"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/mediainfo"
	cMiddleware "github.com/metaview/recordings-ms-go/internal/middleware"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/renderer"
	"github.com/metaview/recordings-ms-go/internal/repository/mariadb"
	"github.com/metaview/recordings-ms-go/internal/storage"
	"github.com/metaview/recordings-ms-go/internal/task"
	recordingSvc "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, cfg.Buckets)

	recordingRepo := mariadb.NewRecordingRepository(database.DB)
	scheduleRepo := mariadb.NewScheduleRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching is disabled")
	}

	extractor := initExtractor(ctx, cfg)

	uploadLinkGeneratorSvc := recordingSvc.NewUploadLinkGenerator(recordingRepo, strg, db.NewUUID)
	r.Post("/recordings/upload-link", api.GenerateUploadLinkHandler(uploadLinkGeneratorSvc))

	uploadValidatorSvc := recordingSvc.NewUploadValidator(recordingRepo, scheduleRepo, strg, extractor, ca, dispatcher)
	r.With(cMiddleware.WithRecordingID()).
		Post("/recordings/{id}/validate", api.ValidateUploadHandler(uploadValidatorSvc))

	getRecordingSvc := recordingSvc.NewRecordingGetter(recordingRepo, strg)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithRecordingID()).
		Get("/recordings/{id}", api.GetRecordingHandler(rendererSvc, getRecordingSvc))

	listRecordingsSvc := recordingSvc.NewRecordingLister(recordingRepo)
	r.Get("/recordings", api.ListRecordingsHandler(listRecordingsSvc))

	deleteRecordingSvc := recordingSvc.NewRecordingDeleter(recordingRepo, ca, strg)
	r.With(cMiddleware.WithRecordingID()).
		Delete("/recordings/{id}", api.DeleteRecordingHandler(deleteRecordingSvc))

	todayScheduleSvc := recordingSvc.NewTodayScheduleGetter(scheduleRepo, recordingRepo)
	r.Get("/schedule/today", api.TodayScheduleHandler(todayScheduleSvc))

	listPeriodsSvc := recordingSvc.NewPeriodsLister(scheduleRepo)
	r.Get("/schedule/periods", api.ListPeriodsHandler(listPeriodsSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithFacultyAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func initExtractor(ctx context.Context, cfg *config.Settings) port.MetadataExtractor {
	openers := mediainfo.NewRemoteOpeners(cfg.AnalyzerMirrors, nil)
	if len(openers) == 0 {
		logger.Warn(ctx, "⚠️  No analyzer mirrors configured — only the basic metadata probe will run")
	}

	return mediainfo.NewExtractor(openers, mediainfo.NewBasicProbe(cfg.FallbackTimeout), cfg.AnalyzerTimeout)
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
