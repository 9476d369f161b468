package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quizbot/internal/question"
	"quizbot/internal/session"
	"quizbot/internal/storage"
)

func newTestEngine(t *testing.T, pairs map[string]string) (*Engine, *session.MemoryStore) {
	t.Helper()
	questions := question.NewMemoryStore()
	for q, a := range pairs {
		questions.Add(q, a)
	}
	sessions := session.NewMemoryStore()
	engine, err := NewEngine(questions, sessions, DefaultThreshold)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine, sessions
}

func TestNewEngineValidation(t *testing.T) {
	questions := question.NewMemoryStore()
	sessions := session.NewMemoryStore()

	if _, err := NewEngine(nil, sessions, DefaultThreshold); err == nil {
		t.Error("nil question store accepted")
	}
	if _, err := NewEngine(questions, nil, DefaultThreshold); err == nil {
		t.Error("nil session store accepted")
	}
	if _, err := NewEngine(questions, sessions, 1.5); err == nil {
		t.Error("threshold above one accepted")
	}
}

func TestSubmitAnswerWithoutQuestion(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()

	d, err := engine.SubmitAnswer(ctx, 1, "что-нибудь")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if d.Kind != DecisionPromptForQuestion {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionPromptForQuestion)
	}
}

func TestGiveUpWithoutQuestion(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})

	d, err := engine.GiveUp(context.Background(), 1)
	if err != nil {
		t.Fatalf("GiveUp: %v", err)
	}
	if d.Kind != DecisionGiveUpNoQuestion {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionGiveUpNoQuestion)
	}
}

func TestNewQuestionAssignsPending(t *testing.T) {
	engine, sessions := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()

	d, err := engine.NewQuestion(ctx, 1)
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	if d.Kind != DecisionNewQuestion {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionNewQuestion)
	}
	if d.Question != "Вопрос?" {
		t.Errorf("question = %q", d.Question)
	}

	pending, err := sessions.HasPending(ctx, 1)
	if err != nil {
		t.Fatalf("HasPending: %v", err)
	}
	if !pending {
		t.Error("no pending question after NewQuestion")
	}
}

func TestNewQuestionAbandonsPrevious(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()

	if _, err := engine.NewQuestion(ctx, 1); err != nil {
		t.Fatalf("first NewQuestion: %v", err)
	}
	d, err := engine.NewQuestion(ctx, 1)
	if err != nil {
		t.Fatalf("second NewQuestion: %v", err)
	}
	if d.Kind != DecisionAbandonedThenNew {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionAbandonedThenNew)
	}
	if d.PreviousAnswer != "Ответ" {
		t.Errorf("previous answer = %q", d.PreviousAnswer)
	}
	if d.Question == "" {
		t.Error("no fresh question issued")
	}
}

func TestSubmitAnswerGrades(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DecisionKind
	}{
		{"correct", "Ответ", DecisionCorrectAnswer},
		{"incorrect", "мимо", DecisionIncorrectAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, sessions := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
			ctx := context.Background()

			if _, err := engine.NewQuestion(ctx, 1); err != nil {
				t.Fatalf("NewQuestion: %v", err)
			}
			d, err := engine.SubmitAnswer(ctx, 1, tt.text)
			if err != nil {
				t.Fatalf("SubmitAnswer: %v", err)
			}
			if d.Kind != tt.want {
				t.Errorf("kind = %s, want %s", d.Kind, tt.want)
			}
			// The reference answer is revealed either way.
			if d.Answer != "Ответ" {
				t.Errorf("answer = %q, want %q", d.Answer, "Ответ")
			}
			pending, err := sessions.HasPending(ctx, 1)
			if err != nil {
				t.Fatalf("HasPending: %v", err)
			}
			if pending {
				t.Error("question still pending after grading")
			}
		})
	}
}

func TestGiveUpRevealsAnswer(t *testing.T) {
	engine, sessions := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()

	if _, err := engine.NewQuestion(ctx, 1); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	d, err := engine.GiveUp(ctx, 1)
	if err != nil {
		t.Fatalf("GiveUp: %v", err)
	}
	if d.Kind != DecisionGiveUpWithAnswer {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionGiveUpWithAnswer)
	}
	if d.Answer != "Ответ" {
		t.Errorf("answer = %q", d.Answer)
	}
	pending, _ := sessions.HasPending(ctx, 1)
	if pending {
		t.Error("question still pending after give up")
	}
}

func TestNewQuestionEmptyStore(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	_, err := engine.NewQuestion(context.Background(), 1)
	if !errors.Is(err, question.ErrEmptyStore) {
		t.Errorf("err = %v, want ErrEmptyStore", err)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()

	if _, err := engine.NewQuestion(ctx, 1); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}

	// A second user without a question is prompted, not graded against the
	// first user's pending answer.
	d, err := engine.SubmitAnswer(ctx, 2, "Ответ")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if d.Kind != DecisionPromptForQuestion {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionPromptForQuestion)
	}

	// The first user's question is untouched.
	d, err = engine.SubmitAnswer(ctx, 1, "Ответ")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if d.Kind != DecisionCorrectAnswer {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionCorrectAnswer)
	}
}

func TestPendingResolvedExactlyOnce(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{"Вопрос?": "Ответ"})
	ctx := context.Background()
	const user = int64(1)

	if _, err := engine.NewQuestion(ctx, user); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}

	// Racing submits and give-ups for the same user must resolve the one
	// pending question exactly once; every other goroutine observes the
	// empty state.
	const workers = 16
	results := make(chan Decision, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			var (
				d   Decision
				err error
			)
			if i%2 == 0 {
				d, err = engine.SubmitAnswer(ctx, user, "Ответ")
			} else {
				d, err = engine.GiveUp(ctx, user)
			}
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results <- d
		}(i)
	}
	close(start)
	wg.Wait()
	close(results)

	resolved := 0
	for d := range results {
		switch d.Kind {
		case DecisionCorrectAnswer, DecisionIncorrectAnswer, DecisionGiveUpWithAnswer:
			resolved++
			if d.Answer != "Ответ" {
				t.Errorf("resolving decision lost the answer: %+v", d)
			}
		case DecisionPromptForQuestion, DecisionGiveUpNoQuestion:
		default:
			t.Errorf("unexpected decision %+v", d)
		}
	}
	if resolved != 1 {
		t.Errorf("question resolved %d times, want exactly once", resolved)
	}
}

func TestUserLocksDrainWhenIdle(t *testing.T) {
	locks := newUserLocks()

	// Unsynchronized counters, one per lock key: the acquire/release pairs
	// are the only thing keeping the increments race-free.
	const workers = 9
	var counters [3]int
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				release := locks.acquire(userID)
				counters[userID]++
				release()
			}
		}(int64(i % 3))
	}
	wg.Wait()

	total := counters[0] + counters[1] + counters[2]
	if total != workers*100 {
		t.Errorf("total increments = %d, want %d", total, workers*100)
	}
	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Errorf("idle lock entries leaked: %d", len(locks.locks))
	}
}

// failingAssignStore breaks AssignQuestion to exercise the path where the
// surrendered answer is discarded after the take already cleared it.
type failingAssignStore struct {
	*session.MemoryStore
	fail bool
}

func (s *failingAssignStore) AssignQuestion(ctx context.Context, userID int64, question, answer string) error {
	if s.fail {
		return storage.Unavailable("sessions.assign", errors.New("connection refused"))
	}
	return s.MemoryStore.AssignQuestion(ctx, userID, question, answer)
}

func TestNewQuestionAssignFailureDiscardsPending(t *testing.T) {
	questions := question.NewMemoryStore()
	questions.Add("Вопрос?", "Ответ")
	sessions := &failingAssignStore{MemoryStore: session.NewMemoryStore()}
	engine, err := NewEngine(questions, sessions, DefaultThreshold)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	ctx := context.Background()

	if _, err := engine.NewQuestion(ctx, 1); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}

	sessions.fail = true
	if _, err := engine.NewQuestion(ctx, 1); !storage.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable", err)
	}

	// The previous pending question was taken before the failure, so the
	// session is back in the empty state and its answer is gone.
	sessions.fail = false
	d, err := engine.GiveUp(ctx, 1)
	if err != nil {
		t.Fatalf("GiveUp: %v", err)
	}
	if d.Kind != DecisionGiveUpNoQuestion {
		t.Errorf("kind = %s, want %s", d.Kind, DecisionGiveUpNoQuestion)
	}
}

func TestFullRound(t *testing.T) {
	engine, _ := newTestEngine(t, map[string]string{
		"Кто написал Войну и мир?": "Лев Николаевич Толстой (писатель). Русский классик.",
	})
	ctx := context.Background()
	const user = int64(42)

	// Answer before any question.
	d, err := engine.SubmitAnswer(ctx, user, "Толстой")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if d.Kind != DecisionPromptForQuestion {
		t.Fatalf("kind = %s, want %s", d.Kind, DecisionPromptForQuestion)
	}

	// Take a question and answer it correctly.
	if d, err = engine.NewQuestion(ctx, user); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	if d.Kind != DecisionNewQuestion {
		t.Fatalf("kind = %s, want %s", d.Kind, DecisionNewQuestion)
	}
	if d, err = engine.SubmitAnswer(ctx, user, "Толстой"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if d.Kind != DecisionCorrectAnswer {
		t.Fatalf("kind = %s, want %s", d.Kind, DecisionCorrectAnswer)
	}

	// Take another and give up.
	if _, err = engine.NewQuestion(ctx, user); err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	if d, err = engine.GiveUp(ctx, user); err != nil {
		t.Fatalf("GiveUp: %v", err)
	}
	if d.Kind != DecisionGiveUpWithAnswer {
		t.Fatalf("kind = %s, want %s", d.Kind, DecisionGiveUpWithAnswer)
	}
}
