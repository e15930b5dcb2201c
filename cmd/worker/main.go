// The worker consumes screenshot jobs from the queue, reads each image back
// from object storage, measures it and records the dimensions. Decoding
// happens off the request path so uploads stay fast.
package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"syscall"

	"gamesarchive/database"
	"gamesarchive/internal/config"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/logger"
	"gamesarchive/internal/messaging"
	"gamesarchive/internal/storage/s3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	store, err := s3.NewClient(context.Background(), cfg, log)
	if err != nil {
		log.Error("object store connection failed", "error", err)
		os.Exit(1)
	}

	queue, err := messaging.NewClient(cfg, log)
	if err != nil {
		log.Error("message broker connection failed", "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	screenshotRepo := repository.NewScreenshotRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := func(ctx context.Context, job messaging.ScreenshotJob) error {
		body, err := store.Get(ctx, job.ObjectKey)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", job.ObjectKey, err)
		}
		defer body.Close()

		// DecodeConfig reads only the header, not the whole image.
		imgCfg, _, err := image.DecodeConfig(body)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", job.ObjectKey, err)
		}

		if err := screenshotRepo.SetDimensions(job.ScreenshotID, imgCfg.Width, imgCfg.Height); err != nil {
			return fmt.Errorf("saving dimensions for %d: %w", job.ScreenshotID, err)
		}

		log.Info("screenshot measured",
			"screenshot_id", job.ScreenshotID,
			"width", imgCfg.Width,
			"height", imgCfg.Height,
		)
		return nil
	}

	if err := queue.ConsumeScreenshotJobs(ctx, handle); err != nil {
		log.Error("consumer failed", "error", err)
		os.Exit(1)
	}
}
