package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, question, answer, difficulty, next_review, review_count, created_at, updated_at
FROM cards
WHERE id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Difficulty, &c.NextReview, &c.ReviewCount, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d", deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, question, answer, difficulty, next_review, review_count, created_at, updated_at
FROM cards
WHERE deck_id = ?
ORDER BY id
`, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows, log)
}

func (r *cardRepository) Due(ctx context.Context, deckID int64, limit int, now time.Time) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: deck_id=%d, limit=%d", deckID, limit)

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, question, answer, difficulty, next_review, review_count, created_at, updated_at
FROM cards
WHERE deck_id = ? AND next_review <= ?
ORDER BY next_review
LIMIT ?
`, deckID, now, limit)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards, err := scanCards(rows, log)
	if err == nil {
		log.Debug("found %d due cards", len(cards))
	}
	return cards, err
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	// New cards are due immediately unless the caller set a schedule.
	nextReview := c.NextReview
	if nextReview.IsZero() {
		nextReview = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, question, answer, difficulty, next_review, review_count)
VALUES (?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Question, c.Answer, c.Difficulty, nextReview, c.ReviewCount)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d, difficulty=%.2f, review_count=%d", c.ID, c.Difficulty, c.ReviewCount)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET question = ?, answer = ?, difficulty = ?, next_review = ?, review_count = ?, updated_at = ?
WHERE id = ?
`, c.Question, c.Answer, c.Difficulty, c.NextReview, c.ReviewCount, time.Now().UTC(), c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

func scanCards(rows *sql.Rows, log *logger.Logger) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Difficulty, &c.NextReview, &c.ReviewCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
