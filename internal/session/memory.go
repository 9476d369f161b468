package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-memory Store used by tests and single-process runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewMemoryStore builds an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (s *MemoryStore) ensure(userID int64) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{UserID: userID}
		s.sessions[userID] = sess
	}
	return sess
}

// Get fetches or creates the session.
func (s *MemoryStore) Get(_ context.Context, userID int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensure(userID)
	out := Session{UserID: sess.UserID}
	if sess.Pending != nil {
		p := *sess.Pending
		out.Pending = &p
	}
	return out, nil
}

// HasPending reports whether the user awaits grading.
func (s *MemoryStore) HasPending(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(userID).Pending != nil, nil
}

// TakePendingAnswer returns the reference answer and clears the pending state.
func (s *MemoryStore) TakePendingAnswer(_ context.Context, userID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensure(userID)
	if sess.Pending == nil {
		return "", false, nil
	}
	answer := sess.Pending.Answer
	sess.Pending = nil
	return answer, true, nil
}

// AssignQuestion stores a new outstanding question.
func (s *MemoryStore) AssignQuestion(_ context.Context, userID int64, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensure(userID)
	sess.Pending = &Pending{Question: question, Answer: answer}
	return nil
}
