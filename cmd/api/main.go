package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/chunkstore/fs"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/eventbus/memory"
	chihandlers "github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/handlers/http/chi"
	mediav1 "github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/handlers/http/chi/v1/media"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/media/ffmpeg"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/adapters/repository/sqlite"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/config"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/cleanup"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/transcode"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/service/upload"
	_ "github.com/joho/godotenv/autoload"
	_ "modernc.org/sqlite"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	chunkStore, err := fs.NewStore(cfg.Media.ChunkSessionsPath, logger)
	if err != nil {
		logger.Error("failed to init chunk store", "error", err)
		os.Exit(1)
	}

	//repositories
	assetRepo := sqlite.NewSqlAssetRepository(db)

	//event bus
	bus := memory.NewBus(logger)

	//media tooling
	runner := ffmpeg.NewCommandRunner()
	images := ffmpeg.NewImageProcessor(cfg.Transcode.FFmpegPath, runner, logger)
	videos := ffmpeg.NewVideoTranscoder(cfg.Transcode.FFmpegPath, runner, logger)

	transcodeService := transcode.NewService(assetRepo, videos, bus, cfg.Media, cfg.Transcode, logger)
	uploadService := upload.NewUploadService(assetRepo, chunkStore, images, transcodeService, bus, cfg.Media, logger)
	cleanupService := cleanup.NewCleanupService(chunkStore, cfg.Sweep.Retention, logger)

	transcodeService.Start(ctx)

	//http
	mediaHandler := mediav1.NewMediaHandlerV1(uploadService, transcodeService, cleanupService, bus, logger)

	router := chihandlers.NewRouter(logger, mediaHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init sweep task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initSweepTask(ctx, cleanupService, cfg.Sweep.Interval, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	transcodeService.Stop()
	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows one writer at a time; a single-connection pool keeps
	// concurrent writes from failing with a busy error
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func initSweepTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("sweep task initialized", "interval", every)

	// run once at startup to clear sessions abandoned before the last restart
	runSweep(ctx, service, logger)

	for {
		select {
		case <-ticker.C:
			runSweep(ctx, service, logger)
		case <-ctx.Done():
			logger.Info("sweep task stopped")
			return
		}
	}

}

func runSweep(ctx context.Context, service port.CleanupService, logger *slog.Logger) {
	logger.Info("sweep task starting")
	deleted, errs := service.SweepSessions(ctx, time.Now())
	for _, err := range errs {
		logger.Error("failed to sweep session", "error", err)
	}
	logger.Info("sweep task completed", "deleted", deleted, "errors", len(errs))
}
