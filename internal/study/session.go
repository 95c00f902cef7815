package study

import (
	"time"

	"github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/models"
)

// ApplyResult records one answer against a session: the result is appended,
// the session counters are updated, and the card is rescheduled via Review.
// Both updated records are returned for the caller to persist together.
//
// The card must belong to the session's deck; on a mismatch a validation
// error is returned and neither input is changed (both are passed by value).
func ApplyResult(session models.Session, card models.Card, isCorrect bool, timeSpentMs int, now time.Time) (models.Session, models.Card, error) {
	if card.DeckID != session.DeckID {
		return session, card, errors.NewValidationError("card_id", "card does not belong to the deck being studied")
	}

	session.CardResults = append(session.CardResults, models.CardResult{
		CardID:      card.ID,
		IsCorrect:   isCorrect,
		TimeSpentMs: timeSpentMs,
	})
	session.CardsStudied++
	if isCorrect {
		session.CorrectAnswers++
	} else {
		session.IncorrectAnswers++
	}

	return session, Review(card, isCorrect, now), nil
}

// End finalizes an active session. Ending a session twice is an error.
func End(session models.Session, now time.Time) (models.Session, error) {
	if session.EndTime != nil {
		return session, errors.NewValidationError("session", "session already ended")
	}
	session.EndTime = &now
	return session, nil
}
