package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	var s models.Session
	var endTime sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, deck_id, start_time, end_time, cards_studied, correct_answers, incorrect_answers
FROM sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.DeckID, &s.StartTime, &endTime, &s.CardsStudied, &s.CorrectAnswers, &s.IncorrectAnswers)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT card_id, is_correct, time_spent_ms
FROM card_results
WHERE session_id = ?
ORDER BY position
`, id)
	if err != nil {
		log.Error("failed to query card results: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cr models.CardResult
		if err := rows.Scan(&cr.CardID, &cr.IsCorrect, &cr.TimeSpentMs); err != nil {
			log.Error("failed to scan card result row: %v", err)
			return nil, err
		}
		s.CardResults = append(s.CardResults, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("session found: cards_studied=%d", s.CardsStudied)
	return &s, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID int64) ([]models.Session, error) {
	return r.list(ctx, models.Session{UserID: userID})
}

func (r *sessionRepository) ListByDeck(ctx context.Context, userID, deckID int64) ([]models.Session, error) {
	return r.list(ctx, models.Session{UserID: userID, DeckID: deckID})
}

func (r *sessionRepository) list(ctx context.Context, filter models.Session) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: user_id=%d, deck_id=%d", filter.UserID, filter.DeckID)

	query := sqlBuilder.Select(
		"id", "user_id", "deck_id", "start_time", "end_time",
		"cards_studied", "correct_answers", "incorrect_answers",
	).From("sessions").OrderBy("start_time DESC")

	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var endTime sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.DeckID, &s.StartTime, &endTime, &s.CardsStudied, &s.CorrectAnswers, &s.IncorrectAnswers); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		if endTime.Valid {
			t := endTime.Time
			s.EndTime = &t
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

func (r *sessionRepository) Insert(ctx context.Context, s models.Session) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: user_id=%d, deck_id=%d", s.UserID, s.DeckID)

	startTime := s.StartTime
	if startTime.IsZero() {
		startTime = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (user_id, deck_id, start_time)
VALUES (?, ?, ?)
`, s.UserID, s.DeckID, startTime)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Update(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%d", s.ID)

	var endTime interface{}
	if s.EndTime != nil {
		endTime = *s.EndTime
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE sessions
SET end_time = ?, cards_studied = ?, correct_answers = ?, incorrect_answers = ?
WHERE id = ?
`, endTime, s.CardsStudied, s.CorrectAnswers, s.IncorrectAnswers, s.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

// RecordAnswer writes the updated session counters, appends the latest card
// result and saves the rescheduled card in one transaction, so an answer
// submission is either fully applied or not at all.
func (r *sessionRepository) RecordAnswer(ctx context.Context, s models.Session, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording answer: session_id=%d, card_id=%d", s.ID, c.ID)

	if len(s.CardResults) == 0 {
		return errors.New("session has no card results to record")
	}
	latest := s.CardResults[len(s.CardResults)-1]
	position := len(s.CardResults) - 1

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `
UPDATE sessions
SET cards_studied = ?, correct_answers = ?, incorrect_answers = ?
WHERE id = ?
`, s.CardsStudied, s.CorrectAnswers, s.IncorrectAnswers, s.ID); err != nil {
			log.Error("failed to update session counters: %v", err)
			return err
		}

		if _, err := t.ExecContext(ctx, `
INSERT INTO card_results (session_id, card_id, is_correct, time_spent_ms, position)
VALUES (?, ?, ?, ?, ?)
`, s.ID, latest.CardID, latest.IsCorrect, latest.TimeSpentMs, position); err != nil {
			log.Error("failed to insert card result: %v", err)
			return err
		}

		if _, err := t.ExecContext(ctx, `
UPDATE cards
SET difficulty = ?, next_review = ?, review_count = ?, updated_at = ?
WHERE id = ?
`, c.Difficulty, c.NextReview, c.ReviewCount, time.Now().UTC(), c.ID); err != nil {
			log.Error("failed to update card schedule: %v", err)
			return err
		}
		return nil
	})
}
