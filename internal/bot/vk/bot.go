// Package vk binds the quiz engine to the VK community messages front-end.
package vk

import (
	"context"
	"fmt"
	"sync"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/SevereCloud/vksdk/v2/api/params"
	"github.com/SevereCloud/vksdk/v2/events"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"
	"github.com/SevereCloud/vksdk/v2/object"
	"log/slog"

	"quizbot/core/logger"
	"quizbot/internal/bot/reply"
	"quizbot/internal/quiz"
)

// Options configure the VK bot.
type Options struct {
	Token   string
	GroupID int
	Engine  *quiz.Engine
}

// Bot runs the VK Bots Long Poll loop against the quiz engine.
type Bot struct {
	vk     *api.VK
	lp     *longpoll.LongPoll
	engine *quiz.Engine

	// greeted tracks users welcomed in this process. VK has no /start
	// command, so the first message from a user gets a greeting instead
	// of an answer attempt.
	greetedMu sync.Mutex
	greeted   map[int]struct{}
}

// New builds a bot. When GroupID is zero it is resolved via the API.
func New(opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("vk: empty token")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("vk: nil engine")
	}

	vk := api.NewVK(opts.Token)

	groupID := opts.GroupID
	if groupID == 0 {
		groups, err := vk.GroupsGetByID(api.Params{})
		if err != nil {
			return nil, fmt.Errorf("vk: resolve group: %w", err)
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("vk: token is not a group token")
		}
		groupID = groups[0].ID
	}

	lp, err := longpoll.NewLongPoll(vk, groupID)
	if err != nil {
		return nil, fmt.Errorf("vk: longpoll init: %w", err)
	}

	b := &Bot{
		vk:      vk,
		lp:      lp,
		engine:  opts.Engine,
		greeted: make(map[int]struct{}),
	}
	lp.MessageNew(b.onMessage)

	logger.VK.Info("longpoll mode",
		slog.String("event", "mode"),
		slog.Int("group_id", groupID),
	)
	return b, nil
}

// Run blocks until the context is done or the long poll loop fails.
func (b *Bot) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- b.lp.Run()
	}()

	select {
	case <-ctx.Done():
		b.lp.Shutdown()
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("vk: longpoll: %w", err)
		}
		return nil
	}
}

// menuKeyboard builds the one-time three-button menu.
func menuKeyboard() *object.MessagesKeyboard {
	kb := object.NewMessagesKeyboard(true)
	kb.AddRow()
	kb.AddTextButton(reply.ButtonNewQuestion, "", object.ButtonBlue)
	kb.AddTextButton(reply.ButtonGiveUp, "", object.ButtonRed)
	kb.AddRow()
	kb.AddTextButton(reply.ButtonMyScore, "", object.ButtonWhite)
	return kb
}

func (b *Bot) firstContact(userID int) bool {
	b.greetedMu.Lock()
	defer b.greetedMu.Unlock()
	if _, ok := b.greeted[userID]; ok {
		return false
	}
	b.greeted[userID] = struct{}{}
	return true
}

func (b *Bot) onMessage(ctx context.Context, obj events.MessageNewObject) {
	peerID := obj.Message.PeerID
	userID := int64(obj.Message.FromID)
	text := obj.Message.Text

	ctx = logger.WithUpdateMeta(ctx, obj.Message.ConversationMessageID, userID, int64(peerID))
	ctx = logger.WithLogger(ctx, logger.Component("vk"))

	if b.firstContact(peerID) {
		b.send(ctx, peerID, reply.GreetingVK, true)
		if text == "" {
			return
		}
	}

	var (
		d   quiz.Decision
		err error
	)
	switch text {
	case reply.ButtonNewQuestion:
		d, err = b.engine.NewQuestion(ctx, userID)
	case reply.ButtonGiveUp:
		d, err = b.engine.GiveUp(ctx, userID)
	case reply.ButtonMyScore:
		b.send(ctx, peerID, reply.ScoreNotKept, true)
		return
	default:
		d, err = b.engine.SubmitAnswer(ctx, userID, text)
	}
	if err != nil {
		logger.Error(ctx, "vk", "engine.fail",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		b.send(ctx, peerID, reply.StoreTrouble, true)
		return
	}

	first, second := reply.Text(d)
	b.send(ctx, peerID, first, second == "")
	if second != "" {
		b.send(ctx, peerID, second, true)
	}
}

// send delivers one message; the keyboard rides on the last message of an
// exchange so it stays visible after one-time collapse.
func (b *Bot) send(ctx context.Context, peerID int, text string, withKeyboard bool) {
	pb := params.NewMessagesSendBuilder()
	pb.PeerID(peerID)
	pb.Message(text)
	pb.RandomID(0)
	if withKeyboard {
		pb.Keyboard(menuKeyboard())
	}
	if _, err := b.vk.MessagesSend(pb.Params); err != nil {
		logger.Error(ctx, "vk", "send.fail",
			slog.String("status", "fail"),
			slog.Int("peer_id", peerID),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Debug(ctx, "vk", "send.success",
		slog.String("status", "ok"),
		slog.Int("peer_id", peerID),
	)
}
