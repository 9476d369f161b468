package reply

import (
	"strings"
	"testing"

	"quizbot/internal/quiz"
)

func TestTextSingleMessageDecisions(t *testing.T) {
	tests := []struct {
		name     string
		decision quiz.Decision
		contains string
	}{
		{"prompt", quiz.Decision{Kind: quiz.DecisionPromptForQuestion}, ButtonNewQuestion},
		{"give up empty", quiz.Decision{Kind: quiz.DecisionGiveUpNoQuestion}, ButtonNewQuestion},
		{"give up revealed", quiz.Decision{Kind: quiz.DecisionGiveUpWithAnswer, Answer: "Ответ"}, "Ответ"},
		{"correct", quiz.Decision{Kind: quiz.DecisionCorrectAnswer, Answer: "Ответ"}, "Полный ответ"},
		{"incorrect", quiz.Decision{Kind: quiz.DecisionIncorrectAnswer, Answer: "Ответ"}, "Правильный ответ"},
		{"new question", quiz.Decision{Kind: quiz.DecisionNewQuestion, Question: "Вопрос?"}, "Вопрос?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := Text(tt.decision)
			if !strings.Contains(first, tt.contains) {
				t.Errorf("Text = %q, want substring %q", first, tt.contains)
			}
			if second != "" {
				t.Errorf("unexpected follow-up %q", second)
			}
		})
	}
}

func TestTextAbandonedThenNew(t *testing.T) {
	first, second := Text(quiz.Decision{
		Kind:           quiz.DecisionAbandonedThenNew,
		Question:       "Новый?",
		PreviousAnswer: "Старый ответ",
	})
	if !strings.Contains(first, "Старый ответ") {
		t.Errorf("first = %q, want the abandoned answer", first)
	}
	if !strings.Contains(second, "Новый?") {
		t.Errorf("second = %q, want the fresh question", second)
	}
}

func TestTextUnknownKindPrompts(t *testing.T) {
	first, second := Text(quiz.Decision{Kind: "nonsense"})
	if first == "" || second != "" {
		t.Errorf("Text = (%q, %q), want prompt and no follow-up", first, second)
	}
}
