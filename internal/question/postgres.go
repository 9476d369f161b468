package question

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"quizbot/core/logger"
	"quizbot/internal/storage"
)

// PostgresStore serves questions from the questions table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an established connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Random draws one question uniformly from the stored set.
// ORDER BY random() is acceptable for the question-set sizes the loader
// uploads (hundreds of rows).
func (s *PostgresStore) Random(ctx context.Context) (QuestionAnswer, error) {
	start := time.Now()
	var qa QuestionAnswer
	err := s.db.GetContext(ctx, &qa,
		`SELECT question, answer FROM questions ORDER BY random() LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return QuestionAnswer{}, ErrEmptyStore
	}
	if err != nil {
		return QuestionAnswer{}, storage.Unavailable("questions.random", err)
	}
	if strings.TrimSpace(qa.Answer) == "" {
		return QuestionAnswer{}, &storage.IntegrityError{Key: qa.Question}
	}
	logger.Debug(ctx, "service.questions", "question.drawn",
		slog.String("status", "ok"),
		slog.Int("question_len", len(qa.Question)),
		slog.Duration("duration", logger.Took(start)),
	)
	return qa, nil
}

// Answer looks up the reference answer for a question key.
func (s *PostgresStore) Answer(ctx context.Context, question string) (string, error) {
	var answer string
	err := s.db.GetContext(ctx, &answer,
		`SELECT answer FROM questions WHERE question = $1`, question)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &storage.IntegrityError{Key: question}
	}
	if err != nil {
		return "", storage.Unavailable("questions.answer", err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", &storage.IntegrityError{Key: question}
	}
	return answer, nil
}

// Count reports the number of stored questions.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM questions`); err != nil {
		return 0, storage.Unavailable("questions.count", err)
	}
	return n, nil
}

// Upsert stores a question/answer pair, replacing the answer on conflict.
// Used by the loader.
func (s *PostgresStore) Upsert(ctx context.Context, qa QuestionAnswer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer) VALUES ($1, $2)
		 ON CONFLICT (question) DO UPDATE SET answer = EXCLUDED.answer`,
		qa.Question, qa.Answer)
	if err != nil {
		return storage.Unavailable("questions.upsert", err)
	}
	return nil
}
