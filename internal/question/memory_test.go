package question

import (
	"context"
	"errors"
	"testing"

	"quizbot/internal/storage"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Random(context.Background()); !errors.Is(err, ErrEmptyStore) {
		t.Errorf("err = %v, want ErrEmptyStore", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Add("Вопрос?", "Ответ")

	qa, err := s.Random(ctx)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if qa.Question != "Вопрос?" || qa.Answer != "Ответ" {
		t.Errorf("qa = %+v", qa)
	}

	answer, err := s.Answer(ctx, "Вопрос?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "Ответ" {
		t.Errorf("answer = %q", answer)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestMemoryStoreReAddReplacesAnswer(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Add("Вопрос?", "Старый")
	s.Add("Вопрос?", "Новый")

	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	answer, err := s.Answer(ctx, "Вопрос?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "Новый" {
		t.Errorf("answer = %q, want %q", answer, "Новый")
	}
}

func TestMemoryStoreIntegrityGap(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.AddOrphan("Сирота?")

	_, err := s.Random(ctx)
	if !storage.IsIntegrity(err) {
		t.Errorf("Random err = %v, want integrity error", err)
	}
	_, err = s.Answer(ctx, "Сирота?")
	if !storage.IsIntegrity(err) {
		t.Errorf("Answer err = %v, want integrity error", err)
	}
}
