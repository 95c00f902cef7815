package services

import (
	"context"
	"time"

	"github.com/lucasmv/flashdeck/internal/access"
	apperrors "github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
)

const defaultStudyLimit = 20

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, user *models.User, card models.Card) (*models.Card, error)
	GetCard(ctx context.Context, user *models.User, id int64) (*models.Card, error)
	ListCards(ctx context.Context, user *models.User, deckID int64) ([]models.Card, error)
	// StudyCards returns the cards of the deck that are due for review,
	// soonest first, truncated to limit (defaulting when limit <= 0).
	StudyCards(ctx context.Context, user *models.User, deckID int64, limit int) ([]models.Card, error)
	UpdateCard(ctx context.Context, user *models.User, id int64, update models.CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, user *models.User, id int64) error
}

type cardService struct {
	cards  repository.CardRepository
	decks  repository.DeckRepository
	policy access.Policy
	now    func() time.Time
}

// NewCardService creates a new CardService. A nil now falls back to
// time.Now.
func NewCardService(cards repository.CardRepository, decks repository.DeckRepository, policy access.Policy, now func() time.Time) CardService {
	if now == nil {
		now = time.Now
	}
	return &cardService{cards: cards, decks: decks, policy: policy, now: now}
}

func (s *cardService) CreateCard(ctx context.Context, user *models.User, card models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", card.DeckID)

	if _, err := s.authorizeDeck(ctx, user, card.DeckID, access.ActionModify); err != nil {
		return nil, err
	}

	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return s.load(ctx, id)
}

func (s *cardService) GetCard(ctx context.Context, user *models.User, id int64) (*models.Card, error) {
	card, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeDeck(ctx, user, card.DeckID, access.ActionView); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, user *models.User, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d", deckID)

	if _, err := s.authorizeDeck(ctx, user, deckID, access.ActionView); err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) StudyCards(ctx context.Context, user *models.User, deckID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting due cards: deck_id=%d, limit=%d", deckID, limit)

	if _, err := s.authorizeDeck(ctx, user, deckID, access.ActionView); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultStudyLimit
	}
	cards, err := s.cards.Due(ctx, deckID, limit, s.now())
	if err != nil {
		log.Error("failed to select due cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, user *models.User, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	card, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeDeck(ctx, user, card.DeckID, access.ActionModify); err != nil {
		return nil, err
	}

	if update.Question != nil {
		card.Question = *update.Question
	}
	if update.Answer != nil {
		card.Answer = *update.Answer
	}

	if err := s.cards.Update(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return s.load(ctx, id)
}

func (s *cardService) DeleteCard(ctx context.Context, user *models.User, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	card, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorizeDeck(ctx, user, card.DeckID, access.ActionModify); err != nil {
		return err
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) load(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if card == nil {
		return nil, apperrors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) authorizeDeck(ctx context.Context, user *models.User, deckID int64, action access.Action) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if deck == nil {
		return nil, apperrors.NewNotFoundError("deck", deckID)
	}
	if err := s.policy.AuthorizeDeck(user, deck, action); err != nil {
		return nil, err
	}
	return deck, nil
}
