package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"quizbot/core/logger"
	"quizbot/internal/storage"
)

// PostgresStore persists sessions in the sessions table as whole records.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an established connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type sessionRow struct {
	UserID     int64  `db:"user_id"`
	HasPending bool   `db:"has_pending"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
}

func (s *PostgresStore) ensure(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, has_pending, question, answer)
		 VALUES ($1, false, '', '')
		 ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return storage.Unavailable("sessions.ensure", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		logger.Debug(ctx, "service.sessions", "session.created",
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
		)
	}
	return nil
}

// Get fetches or creates the session.
func (s *PostgresStore) Get(ctx context.Context, userID int64) (Session, error) {
	if err := s.ensure(ctx, userID); err != nil {
		return Session{}, err
	}
	var row sessionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT user_id, has_pending, question, answer FROM sessions WHERE user_id = $1`,
		userID)
	if err != nil {
		return Session{}, storage.Unavailable("sessions.get", err)
	}
	sess := Session{UserID: row.UserID}
	if row.HasPending {
		sess.Pending = &Pending{Question: row.Question, Answer: row.Answer}
	}
	return sess, nil
}

// HasPending reports whether the user awaits grading.
func (s *PostgresStore) HasPending(ctx context.Context, userID int64) (bool, error) {
	sess, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return sess.HasPending(), nil
}

// TakePendingAnswer clears the pending state and returns the answer in a
// single statement, so two racing takers cannot both observe the answer.
func (s *PostgresStore) TakePendingAnswer(ctx context.Context, userID int64) (string, bool, error) {
	if err := s.ensure(ctx, userID); err != nil {
		return "", false, err
	}
	start := time.Now()
	var answer string
	err := s.db.GetContext(ctx, &answer,
		`UPDATE sessions s
		 SET has_pending = false, question = '', answer = ''
		 FROM (SELECT user_id, answer FROM sessions
		       WHERE user_id = $1 AND has_pending FOR UPDATE) old
		 WHERE s.user_id = old.user_id
		 RETURNING old.answer`,
		userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.Unavailable("sessions.take", err)
	}
	logger.Debug(ctx, "service.sessions", "session.resolved",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Duration("duration", logger.Took(start)),
	)
	return answer, true, nil
}

// AssignQuestion stores a new outstanding question as a whole-record write.
func (s *PostgresStore) AssignQuestion(ctx context.Context, userID int64, question, answer string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, has_pending, question, answer)
		 VALUES ($1, true, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET has_pending = true, question = EXCLUDED.question, answer = EXCLUDED.answer`,
		userID, question, answer)
	if err != nil {
		return storage.Unavailable("sessions.assign", err)
	}
	return nil
}
