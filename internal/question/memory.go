package question

import (
	"context"
	"math/rand"
	"sync"

	"quizbot/internal/storage"
)

// MemoryStore keeps questions in process memory. It mirrors the external
// store contract as a key set plus an answer map, which makes integrity
// gaps representable for tests.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []string
	answers   map[string]string
}

// NewMemoryStore builds an empty in-memory question store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{answers: make(map[string]string)}
}

// Add registers a question/answer pair. Re-adding a question replaces its
// answer without duplicating the key.
func (s *MemoryStore) Add(q, a string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[q]; !ok {
		s.questions = append(s.questions, q)
	}
	s.answers[q] = a
}

// AddOrphan registers a question key without an answer, used to exercise
// integrity-gap handling.
func (s *MemoryStore) AddOrphan(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, q)
}

// Random draws one question uniformly from the stored set.
func (s *MemoryStore) Random(_ context.Context) (QuestionAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.questions) == 0 {
		return QuestionAnswer{}, ErrEmptyStore
	}
	q := s.questions[rand.Intn(len(s.questions))]
	a, ok := s.answers[q]
	if !ok {
		return QuestionAnswer{}, &storage.IntegrityError{Key: q}
	}
	return QuestionAnswer{Question: q, Answer: a}, nil
}

// Answer looks up the reference answer for a question key.
func (s *MemoryStore) Answer(_ context.Context, question string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.answers[question]
	if !ok {
		return "", &storage.IntegrityError{Key: question}
	}
	return a, nil
}

// Count reports the number of stored question keys.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}
