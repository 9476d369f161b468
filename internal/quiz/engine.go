package quiz

import (
	"context"
	"fmt"

	"log/slog"

	"quizbot/core/logger"
	"quizbot/internal/question"
	"quizbot/internal/session"
)

// Engine implements the conversation policy shared by all front-ends. It is
// pure decision logic over the two stores; sending messages is the driver's
// job.
type Engine struct {
	questions question.Store
	sessions  session.Store
	threshold float64
	locks     *userLocks
}

// NewEngine wires an engine over the given stores. Threshold must lie in
// [0, 1]; drivers normally pass DefaultThreshold.
func NewEngine(questions question.Store, sessions session.Store, threshold float64) (*Engine, error) {
	if questions == nil || sessions == nil {
		return nil, fmt.Errorf("quiz: nil store provided")
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("quiz: threshold %v outside [0, 1]", threshold)
	}
	return &Engine{
		questions: questions,
		sessions:  sessions,
		threshold: threshold,
		locks:     newUserLocks(),
	}, nil
}

// NewQuestion resolves any outstanding question (revealing its answer) and
// issues a fresh one.
func (e *Engine) NewQuestion(ctx context.Context, userID int64) (Decision, error) {
	release := e.locks.acquire(userID)
	defer release()

	prev, hadPending, err := e.sessions.TakePendingAnswer(ctx, userID)
	if err != nil {
		return Decision{}, err
	}

	qa, err := e.questions.Random(ctx)
	if err != nil {
		e.warnDiscardedPending(ctx, userID, hadPending)
		return Decision{}, err
	}
	if err := e.sessions.AssignQuestion(ctx, userID, qa.Question, qa.Answer); err != nil {
		e.warnDiscardedPending(ctx, userID, hadPending)
		return Decision{}, err
	}

	e.logDecision(ctx, userID, "question.issued", slog.Bool("abandoned", hadPending))

	if hadPending {
		return Decision{
			Kind:           DecisionAbandonedThenNew,
			Question:       qa.Question,
			PreviousAnswer: prev,
		}, nil
	}
	return Decision{Kind: DecisionNewQuestion, Question: qa.Question}, nil
}

// GiveUp surrenders the outstanding question, revealing its answer. With
// nothing pending the user is told to request a question first.
func (e *Engine) GiveUp(ctx context.Context, userID int64) (Decision, error) {
	release := e.locks.acquire(userID)
	defer release()

	answer, hadPending, err := e.sessions.TakePendingAnswer(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	if !hadPending {
		e.logDecision(ctx, userID, "giveup.empty")
		return Decision{Kind: DecisionGiveUpNoQuestion}, nil
	}
	e.logDecision(ctx, userID, "giveup.revealed")
	return Decision{Kind: DecisionGiveUpWithAnswer, Answer: answer}, nil
}

// SubmitAnswer grades free text against the outstanding question. The
// reference answer is revealed regardless of correctness and the session
// returns to the no-question state. With nothing pending the user is
// prompted to request a question.
func (e *Engine) SubmitAnswer(ctx context.Context, userID int64, text string) (Decision, error) {
	release := e.locks.acquire(userID)
	defer release()

	reference, hadPending, err := e.sessions.TakePendingAnswer(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	if !hadPending {
		e.logDecision(ctx, userID, "answer.unsolicited")
		return Decision{Kind: DecisionPromptForQuestion}, nil
	}

	correct := Grade(text, reference, e.threshold)
	e.logDecision(ctx, userID, "answer.graded",
		slog.Bool("correct", correct),
		slog.Float64("threshold", e.threshold),
	)
	if correct {
		return Decision{Kind: DecisionCorrectAnswer, Answer: reference}, nil
	}
	return Decision{Kind: DecisionIncorrectAnswer, Answer: reference}, nil
}

// Session exposes the raw session record for diagnostics.
func (e *Engine) Session(ctx context.Context, userID int64) (session.Session, error) {
	return e.sessions.Get(ctx, userID)
}

// warnDiscardedPending records that a surrendered reference answer was lost:
// the take already cleared the pending question, so a failure before the new
// assignment leaves nothing to reveal to the user.
func (e *Engine) warnDiscardedPending(ctx context.Context, userID int64, hadPending bool) {
	if !hadPending {
		return
	}
	logger.Warn(ctx, "service.quiz", "question.discarded",
		slog.String("status", "fail"),
		slog.Int64("user_id", userID),
	)
}

func (e *Engine) logDecision(ctx context.Context, userID int64, event string, attrs ...slog.Attr) {
	all := append([]slog.Attr{
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
	}, attrs...)
	logger.Debug(ctx, "service.quiz", event, all...)
}
