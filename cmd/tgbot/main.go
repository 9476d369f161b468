package main

import (
	"log"

	corecmd "quizbot/core/cmd"
	"quizbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadTelegram(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Fatalf("tgbot: %v", err)
	}
}
