// Loader uploads a question dump into the database. It reads the upstream
// JSON format and upserts records, so repeated runs converge.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"log/slog"

	corebootstrap "quizbot/core/bootstrap"
	"quizbot/core/logger"
	"quizbot/internal/app"
	"quizbot/internal/question"
)

func main() {
	var (
		file  = flag.String("file", "", "path to the question dump (JSON)")
		limit = flag.Int("limit", 0, "max records to load, 0 for all")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("loader: -file is required")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := app.Load(cfgPath)
	if err != nil {
		log.Fatalf("loader: failed to load config: %v", err)
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		log.Fatalf("loader: bootstrap failed: %v", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	defer res.DB.Close()

	records, err := question.LoadFile(*file, *limit)
	if err != nil {
		log.Fatalf("loader: %v", err)
	}

	store := question.NewPostgresStore(res.DB)
	ctx := context.Background()
	start := time.Now()
	for _, qa := range records {
		if err := store.Upsert(ctx, qa); err != nil {
			log.Fatalf("loader: upsert failed: %v", err)
		}
	}

	total, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("loader: count failed: %v", err)
	}

	logger.SEED.Info("questions loaded",
		slog.String("event", "seed.complete"),
		slog.String("file", *file),
		slog.Int("loaded", len(records)),
		slog.Int("questions_total", total),
		slog.Duration("duration", logger.Took(start)),
	)
}
