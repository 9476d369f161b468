// Package app assembles the quiz bot from core infrastructure and domain
// services.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	corebootstrap "quizbot/core/bootstrap"
	corecmd "quizbot/core/cmd"
	coretelegram "quizbot/core/telegram"
	tghelpers "quizbot/core/telegram/helpers"
	"quizbot/core/telegram/router"
	bottelegram "quizbot/internal/bot/telegram"
	botvk "quizbot/internal/bot/vk"
	"quizbot/internal/question"
	"quizbot/internal/quiz"
	"quizbot/internal/session"
)

// App holds the wired components of a quiz bot process.
type App struct {
	cfg *Config
	db  *sqlx.DB

	Questions *question.PostgresStore
	Sessions  *session.PostgresStore
	Engine    *quiz.Engine
}

// Bootstrap initializes logging, storage, and the engine.
func Bootstrap(carrier corecmd.ConfigCarrier) (*App, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	questions := question.NewPostgresStore(res.DB)
	sessions := session.NewPostgresStore(res.DB)
	engine, err := quiz.NewEngine(questions, sessions, cfg.Quiz.Threshold)
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}

	return &App{
		cfg:       cfg,
		db:        res.DB,
		Questions: questions,
		Sessions:  sessions,
		Engine:    engine,
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// TelegramRunOptions builds the bot runtime wiring.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	reg := coretelegram.NewRegistry()
	handlers := bottelegram.NewHandlers(a.Engine, a.Questions)
	handlers.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)

	onLimited := func(c tele.Context) error {
		return tghelpers.SendText(c, "Не так быстро, пожалуйста.")
	}

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(core, onLimited),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}

// RunVK starts the VK front-end over the same engine.
func (a *App) RunVK(ctx context.Context) error {
	bot, err := botvk.New(botvk.Options{
		Token:   a.cfg.VK.Token,
		GroupID: a.cfg.VK.GroupID,
		Engine:  a.Engine,
	})
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}
