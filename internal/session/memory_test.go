package session

import (
	"context"
	"testing"
)

func TestFreshUserHasNothingPending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pending, err := s.HasPending(ctx, 1)
	if err != nil {
		t.Fatalf("HasPending: %v", err)
	}
	if pending {
		t.Error("fresh user reported pending")
	}

	sess, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.UserID != 1 || sess.HasPending() {
		t.Errorf("sess = %+v, want empty session for user 1", sess)
	}
}

func TestAssignThenTake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.AssignQuestion(ctx, 1, "Вопрос?", "Ответ"); err != nil {
		t.Fatalf("AssignQuestion: %v", err)
	}

	pending, err := s.HasPending(ctx, 1)
	if err != nil {
		t.Fatalf("HasPending: %v", err)
	}
	if !pending {
		t.Fatal("no pending after assign")
	}

	answer, ok, err := s.TakePendingAnswer(ctx, 1)
	if err != nil {
		t.Fatalf("TakePendingAnswer: %v", err)
	}
	if !ok || answer != "Ответ" {
		t.Errorf("take = (%q, %v), want (%q, true)", answer, ok, "Ответ")
	}
}

func TestTakeIsOneShot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.AssignQuestion(ctx, 1, "Вопрос?", "Ответ"); err != nil {
		t.Fatalf("AssignQuestion: %v", err)
	}
	if _, ok, _ := s.TakePendingAnswer(ctx, 1); !ok {
		t.Fatal("first take returned nothing")
	}
	if answer, ok, _ := s.TakePendingAnswer(ctx, 1); ok {
		t.Errorf("second take returned %q, want nothing", answer)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.AssignQuestion(ctx, 1, "Вопрос?", "Ответ"); err != nil {
		t.Fatalf("AssignQuestion: %v", err)
	}
	sess, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	sess.Pending.Answer = "подмена"

	answer, _, err := s.TakePendingAnswer(ctx, 1)
	if err != nil {
		t.Fatalf("TakePendingAnswer: %v", err)
	}
	if answer != "Ответ" {
		t.Errorf("stored answer mutated through Get copy: %q", answer)
	}
}

func TestReassignReplacesPending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.AssignQuestion(ctx, 1, "Первый?", "Один"); err != nil {
		t.Fatalf("AssignQuestion: %v", err)
	}
	if err := s.AssignQuestion(ctx, 1, "Второй?", "Два"); err != nil {
		t.Fatalf("AssignQuestion: %v", err)
	}
	answer, ok, err := s.TakePendingAnswer(ctx, 1)
	if err != nil {
		t.Fatalf("TakePendingAnswer: %v", err)
	}
	if !ok || answer != "Два" {
		t.Errorf("take = (%q, %v), want (%q, true)", answer, ok, "Два")
	}
}
