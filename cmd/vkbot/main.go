package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quizbot/core/logger"
	"quizbot/internal/app"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := app.LoadVK(cfgPath)
	if err != nil {
		log.Fatalf("vkbot: failed to load config: %v", err)
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("vkbot: bootstrap failed: %v", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	defer application.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := application.RunVK(ctx); err != nil {
		log.Fatalf("vkbot: %v", err)
	}
}
