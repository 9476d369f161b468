// Package question provides access to the shared question/answer store.
package question

import (
	"context"
	"errors"
)

// QuestionAnswer is an immutable question/answer pair keyed by question text.
type QuestionAnswer struct {
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

// ErrEmptyStore is returned by Random when the store holds no questions.
var ErrEmptyStore = errors.New("question store is empty")

// Store is the read contract over the external question source: a set of
// question keys plus an answer per key, with a uniform random draw.
type Store interface {
	// Random draws one question uniformly from the stored set.
	Random(ctx context.Context) (QuestionAnswer, error)
	// Answer looks up the reference answer for a question key.
	Answer(ctx context.Context, question string) (string, error)
	// Count reports the number of stored questions.
	Count(ctx context.Context) (int, error)
}
