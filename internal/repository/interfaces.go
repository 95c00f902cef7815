package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lucasmv/flashdeck/internal/models"
)

// ErrUsernameTaken is returned by UserRepository.Insert when the username
// already exists.
var ErrUsernameTaken = errors.New("username already taken")

// Repositories return (nil, nil) when a record does not exist; services
// translate that into a typed not-found error.

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, username string) (*models.User, error)
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Update(ctx context.Context, deck models.Deck) error
	// Delete removes the deck and all of its cards in one transaction.
	Delete(ctx context.Context, id int64) error
	CountCards(ctx context.Context, deckID int64) (int, error)
}

// CardRepository handles card data access
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	// Due returns cards of the deck whose next review is at or before now,
	// ordered by next_review, truncated to limit.
	Due(ctx context.Context, deckID int64, limit int, now time.Time) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id int64) error
}

// SessionRepository handles session data access
type SessionRepository interface {
	// Get loads a session including its ordered card results.
	Get(ctx context.Context, id int64) (*models.Session, error)
	// List queries return sessions newest first, without card results.
	ListByUser(ctx context.Context, userID int64) ([]models.Session, error)
	ListByDeck(ctx context.Context, userID, deckID int64) ([]models.Session, error)
	Insert(ctx context.Context, session models.Session) (int64, error)
	Update(ctx context.Context, session models.Session) error
	// RecordAnswer persists an answer submission: the session counters, the
	// newest card result and the rescheduled card are written in a single
	// transaction.
	RecordAnswer(ctx context.Context, session models.Session, card models.Card) error
}
