package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/logger"
	"github.com/DeafMist/news-tagger/internal/report"
)

func main() {
	log := logger.New("retention")
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", slog.Any("err", err))
	}

	cfg, err := config.LoadRetention()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("retention job running",
		slog.String("dir", cfg.Dir),
		slog.Duration("interval", cfg.Interval),
		slog.Duration("max_age", cfg.MaxAge),
	)

	runOnce(log, cfg, time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case now := <-ticker.C:
			runOnce(log, cfg, now)
		}
	}
}

func runOnce(log *slog.Logger, cfg *config.Retention, now time.Time) int {
	deleted, err := report.Prune(cfg.Dir, cfg.MaxAge, now)
	if err != nil {
		log.Warn("retention run failed (will retry on next interval)", slog.Any("err", err), slog.Int("deleted", deleted))
		return deleted
	}

	if deleted > 0 {
		log.Info("retention run completed", slog.Int("deleted", deleted))
	} else {
		log.Debug("retention run completed, no old reports found")
	}
	return deleted
}
