package services

import (
	"context"

	"github.com/lucasmv/flashdeck/internal/access"
	apperrors "github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, user *models.User, deck models.Deck) (*models.Deck, error)
	GetDeck(ctx context.Context, user *models.User, id int64) (*models.Deck, error)
	ListDecks(ctx context.Context, user *models.User, tag string) ([]models.Deck, error)
	UpdateDeck(ctx context.Context, user *models.User, id int64, update models.DeckUpdate) (*models.Deck, error)
	DeleteDeck(ctx context.Context, user *models.User, id int64) error
	DeckStats(ctx context.Context, user *models.User, id int64) (*models.DeckStat, error)
}

type deckService struct {
	decks  repository.DeckRepository
	policy access.Policy
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository, policy access.Policy) DeckService {
	return &deckService{decks: decks, policy: policy}
}

func (s *deckService) CreateDeck(ctx context.Context, user *models.User, deck models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: title=%s, owner_id=%d", deck.Title, user.ID)

	deck.OwnerID = user.ID
	id, err := s.decks.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return s.load(ctx, id)
}

func (s *deckService) GetDeck(ctx context.Context, user *models.User, id int64) (*models.Deck, error) {
	deck, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeDeck(user, deck, access.ActionView); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, user *models.User, tag string) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: owner_id=%d, tag=%s", user.ID, tag)

	decks, err := s.decks.List(ctx, models.DeckFilter{OwnerID: user.ID, Tag: tag})
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, user *models.User, id int64, update models.DeckUpdate) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%d", id)

	deck, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeDeck(user, deck, access.ActionModify); err != nil {
		return nil, err
	}

	if update.Title != nil {
		deck.Title = *update.Title
	}
	if update.Description != nil {
		deck.Description = *update.Description
	}
	if update.IsPublic != nil {
		deck.IsPublic = *update.IsPublic
	}
	if update.Tags != nil {
		deck.Tags = *update.Tags
	}

	if err := s.decks.Update(ctx, *deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return s.load(ctx, id)
}

func (s *deckService) DeleteDeck(ctx context.Context, user *models.User, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d", id)

	deck, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.AuthorizeDeck(user, deck, access.ActionModify); err != nil {
		return err
	}

	if err := s.decks.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return apperrors.NewInternalError(err)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}

func (s *deckService) DeckStats(ctx context.Context, user *models.User, id int64) (*models.DeckStat, error) {
	deck, err := s.GetDeck(ctx, user, id)
	if err != nil {
		return nil, err
	}

	count, err := s.decks.CountCards(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &models.DeckStat{
		DeckID:    deck.ID,
		Title:     deck.Title,
		CardCount: count,
		CreatedAt: deck.CreatedAt,
	}, nil
}

func (s *deckService) load(ctx context.Context, id int64) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if deck == nil {
		return nil, apperrors.NewNotFoundError("deck", id)
	}
	return deck, nil
}
