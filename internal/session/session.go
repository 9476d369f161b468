// Package session tracks the per-user question state machine: a user either
// has no outstanding question or awaits grading of exactly one.
package session

import "context"

// Pending holds the outstanding question and its reference answer. A session
// carries it only while a question is awaiting an answer.
type Pending struct {
	Question string
	Answer   string
}

// Session is the per-user record. Pending == nil means no question is
// outstanding.
type Session struct {
	UserID  int64
	Pending *Pending
}

// HasPending reports whether a question is awaiting an answer.
func (s Session) HasPending() bool { return s.Pending != nil }

// Store persists sessions keyed by user id. All operations lazily create a
// session with no pending question the first time a user id is seen; an
// unknown user is never an error.
type Store interface {
	// Get fetches or creates the session.
	Get(ctx context.Context, userID int64) (Session, error)
	// HasPending reports whether the user awaits grading, creating the
	// session if absent.
	HasPending(ctx context.Context, userID int64) (bool, error)
	// TakePendingAnswer returns the reference answer and clears the pending
	// state in one step, so a question is resolved exactly once. The bool is
	// false when the user is unknown or has nothing pending.
	TakePendingAnswer(ctx context.Context, userID int64) (string, bool, error)
	// AssignQuestion stores a new outstanding question, creating the session
	// if absent.
	AssignQuestion(ctx context.Context, userID int64, question, answer string) error
}
