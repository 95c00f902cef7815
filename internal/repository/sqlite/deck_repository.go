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

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	var tags string
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, title, description, is_public, tags, created_at, updated_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.IsPublic, &tags, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	d.Tags = splitTags(tags)
	log.Debug("deck found: title=%s", d.Title)
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: owner_id=%d, tag=%s", filter.OwnerID, filter.Tag)

	query := sqlBuilder.Select(
		"id", "owner_id", "title", "description", "is_public", "tags", "created_at", "updated_at",
	).From("decks")

	// Dynamic WHERE clauses
	if filter.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Tag != "" {
		// Comma-joined tags column, match whole tag only.
		query = query.Where(squirrel.Or{
			squirrel.Eq{"tags": filter.Tag},
			squirrel.Like{"tags": filter.Tag + ",%"},
			squirrel.Like{"tags": "%," + filter.Tag},
			squirrel.Like{"tags": "%," + filter.Tag + ",%"},
		})
	}

	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		var tags string
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.IsPublic, &tags, &d.CreatedAt, &d.UpdatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		d.Tags = splitTags(tags)
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: title=%s, owner_id=%d", d.Title, d.OwnerID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (owner_id, title, description, is_public, tags)
VALUES (?, ?, ?, ?, ?)
`, d.OwnerID, d.Title, d.Description, d.IsPublic, joinTags(d.Tags))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", d.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET title = ?, description = ?, is_public = ?, tags = ?, updated_at = ?
WHERE id = ?
`, d.Title, d.Description, d.IsPublic, joinTags(d.Tags), time.Now().UTC(), d.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	// Cards go first, then the deck, atomically.
	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, id); err != nil {
			log.Error("failed to delete deck cards: %v", err)
			return err
		}
		if _, err := t.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
			log.Error("failed to delete deck: %v", err)
			return err
		}
		return nil
	})
}

func (r *deckRepository) CountCards(ctx context.Context, deckID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("counting cards: deck_id=%d", deckID)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE deck_id = ?`, deckID).Scan(&count)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}
