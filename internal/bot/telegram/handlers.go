// Package telegram binds the quiz engine to the Telegram front-end.
package telegram

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "quizbot/core/telegram"
	"quizbot/core/telegram/commands"
	tghelpers "quizbot/core/telegram/helpers"
	"quizbot/core/telegram/keyboard"
	"quizbot/internal/bot/reply"
	"quizbot/internal/question"
	"quizbot/internal/quiz"
)

// Handlers routes Telegram updates into the quiz engine.
type Handlers struct {
	engine    *quiz.Engine
	questions question.Store
	startedAt time.Time
}

// NewHandlers builds the handler set for a running engine.
func NewHandlers(engine *quiz.Engine, questions question.Store) *Handlers {
	return &Handlers{
		engine:    engine,
		questions: questions,
		startedAt: time.Now(),
	}
}

// Register wires commands and the text fallback into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Начать викторину",
	})
	reg.RegisterCommand("/stop", commands.Command{
		Handler:     h.Stop,
		Description: "Остановить викторину",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Статистика бота",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(h.Text)
}

// MenuKeyboard returns the persistent three-button menu.
func MenuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{reply.ButtonNewQuestion, reply.ButtonGiveUp},
		[]string{reply.ButtonMyScore},
	)
}

// Start greets the user and shows the menu.
func (h *Handlers) Start(c tele.Context) error {
	return tghelpers.SendKeyboard(c, reply.Greeting, MenuKeyboard())
}

// Stop hides the menu. Any outstanding question stays in the store and is
// resolved the usual way when the user returns.
func (h *Handlers) Stop(c tele.Context) error {
	return tghelpers.SendKeyboard(c, reply.QuizStopped, keyboard.RemoveKeyboard())
}

// Stats reports store and process counters to the admin.
func (h *Handlers) Stats(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "stats")
	total, err := h.questions.Count(ctx)
	if err != nil {
		_ = tghelpers.SendText(c, reply.StoreTrouble)
		return err
	}
	uptime := time.Since(h.startedAt).Round(time.Second)
	return tghelpers.SendText(c, fmt.Sprintf("Вопросов в базе: %d\nАптайм: %s", total, uptime))
}

// Text is the fallback for plain messages: menu buttons first, anything else
// is graded as an answer attempt.
func (h *Handlers) Text(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	var (
		d   quiz.Decision
		err error
	)
	switch c.Text() {
	case reply.ButtonNewQuestion:
		d, err = h.engine.NewQuestion(ctx, userID)
	case reply.ButtonGiveUp:
		d, err = h.engine.GiveUp(ctx, userID)
	case reply.ButtonMyScore:
		return tghelpers.SendText(c, reply.ScoreNotKept)
	default:
		d, err = h.engine.SubmitAnswer(ctx, userID, c.Text())
	}
	if err != nil {
		// ErrEmptyStore and store failures read the same to the user.
		_ = tghelpers.SendText(c, reply.StoreTrouble)
		return err
	}

	first, second := reply.Text(d)
	if err := tghelpers.SendText(c, first); err != nil {
		return err
	}
	if second != "" {
		return tghelpers.SendText(c, second)
	}
	return nil
}
