package services

import (
	"context"
	"time"

	"github.com/lucasmv/flashdeck/internal/access"
	apperrors "github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
	"github.com/lucasmv/flashdeck/internal/study"
)

const recentSessionCount = 5

// UserStats bundles the aggregate study statistics with the user's most
// recent sessions.
type UserStats struct {
	Stats          models.StudyStats `json:"stats"`
	RecentSessions []models.Session  `json:"recent_sessions"`
}

// SessionService handles study session business logic
type SessionService interface {
	StartSession(ctx context.Context, user *models.User, deckID int64) (*models.Session, error)
	// SubmitAnswer records one answer: the session counters, the card result
	// and the card's new review schedule are persisted atomically.
	SubmitAnswer(ctx context.Context, user *models.User, sessionID, cardID int64, isCorrect bool, timeSpentMs int) (*models.Session, error)
	EndSession(ctx context.Context, user *models.User, sessionID int64) (*models.Session, error)
	GetSession(ctx context.Context, user *models.User, sessionID int64) (*models.Session, error)
	ListUserSessions(ctx context.Context, user *models.User) ([]models.Session, error)
	ListDeckSessions(ctx context.Context, user *models.User, deckID int64) ([]models.Session, error)
	UserStats(ctx context.Context, user *models.User) (*UserStats, error)
}

type sessionService struct {
	sessions repository.SessionRepository
	cards    repository.CardRepository
	decks    repository.DeckRepository
	policy   access.Policy
	now      func() time.Time
}

// NewSessionService creates a new SessionService. A nil now falls back to
// time.Now.
func NewSessionService(sessions repository.SessionRepository, cards repository.CardRepository, decks repository.DeckRepository, policy access.Policy, now func() time.Time) SessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{sessions: sessions, cards: cards, decks: decks, policy: policy, now: now}
}

func (s *sessionService) StartSession(ctx context.Context, user *models.User, deckID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: user_id=%d, deck_id=%d", user.ID, deckID)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if deck == nil {
		return nil, apperrors.NewNotFoundError("deck", deckID)
	}
	if err := s.policy.AuthorizeDeck(user, deck, access.ActionView); err != nil {
		return nil, err
	}

	id, err := s.sessions.Insert(ctx, models.Session{
		UserID:    user.ID,
		DeckID:    deckID,
		StartTime: s.now(),
	})
	if err != nil {
		log.Error("failed to start session: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	log.Info("session started: id=%d, deck_id=%d", id, deckID)
	return s.load(ctx, id)
}

func (s *sessionService) SubmitAnswer(ctx context.Context, user *models.User, sessionID, cardID int64, isCorrect bool, timeSpentMs int) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: session_id=%d, card_id=%d, correct=%t", sessionID, cardID, isCorrect)

	session, err := s.authorized(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if card == nil {
		return nil, apperrors.NewNotFoundError("card", cardID)
	}

	updatedSession, updatedCard, err := study.ApplyResult(*session, *card, isCorrect, timeSpentMs, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.sessions.RecordAnswer(ctx, updatedSession, updatedCard); err != nil {
		log.Error("failed to record answer: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return s.load(ctx, sessionID)
}

func (s *sessionService) EndSession(ctx context.Context, user *models.User, sessionID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending session: id=%d", sessionID)

	session, err := s.authorized(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}

	ended, err := study.End(*session, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Update(ctx, ended); err != nil {
		log.Error("failed to end session: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	log.Info("session ended: id=%d, cards=%d, rate=%.1f%%", ended.ID, ended.CardsStudied, ended.SuccessRate())
	return s.load(ctx, sessionID)
}

func (s *sessionService) GetSession(ctx context.Context, user *models.User, sessionID int64) (*models.Session, error) {
	return s.authorized(ctx, user, sessionID)
}

func (s *sessionService) ListUserSessions(ctx context.Context, user *models.User) ([]models.Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return sessions, nil
}

func (s *sessionService) ListDeckSessions(ctx context.Context, user *models.User, deckID int64) ([]models.Session, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if deck == nil {
		return nil, apperrors.NewNotFoundError("deck", deckID)
	}
	if err := s.policy.AuthorizeDeck(user, deck, access.ActionView); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByDeck(ctx, user.ID, deckID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return sessions, nil
}

func (s *sessionService) UserStats(ctx context.Context, user *models.User) (*UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing stats: user_id=%d", user.ID)

	sessions, err := s.sessions.ListByUser(ctx, user.ID)
	if err != nil {
		log.Error("failed to list sessions for stats: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	return &UserStats{
		Stats:          study.Summarize(sessions),
		RecentSessions: study.Recent(sessions, recentSessionCount),
	}, nil
}

func (s *sessionService) load(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if session == nil {
		return nil, apperrors.NewNotFoundError("session", id)
	}
	return session, nil
}

func (s *sessionService) authorized(ctx context.Context, user *models.User, id int64) (*models.Session, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeSession(user, session); err != nil {
		return nil, err
	}
	return session, nil
}
